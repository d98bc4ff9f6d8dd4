package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmall/internal/domain/review"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// reviewRepository 评论仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评论
// (user_id, book_id)唯一索引保证每人每书一条,并发重复提交转换为业务错误
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:           rv.UserID,
		BookID:           rv.BookID,
		Rating:           rv.Rating,
		Comment:          rv.Comment,
		VerifiedPurchase: rv.VerifiedPurchase,
		Status:           int(rv.Status),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "创建评论失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找评论
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评论失败")
	}

	return toReviewEntity(&model), nil
}

// FindByUserAndBook 查找用户对某本书的评论
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评论失败")
	}

	return toReviewEntity(&model), nil
}

// ListByBookID 查询图书的评论列表(只含已通过)
func (r *reviewRepository) ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var models []ReviewModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("book_id = ?", bookID).
		Where("status = ?", int(review.ReviewStatusApproved))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评论列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, total, nil
}

// ListPending 查询待审核评论(管理端)
func (r *reviewRepository) ListPending(ctx context.Context, page, pageSize int) ([]*review.Review, int64, error) {
	var models []ReviewModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("status = ?", int(review.ReviewStatusPending))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询待审核评论总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询待审核评论失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, total, nil
}

// Update 更新评论(审核状态流转)
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"status":     int(rv.Status),
			"updated_at": rv.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评论失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// AverageRating 图书的平均评分(只统计已通过,无评论返回0)
func (r *reviewRepository) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("book_id = ?", bookID).
		Where("status = ?", int(review.ReviewStatusApproved)).
		Select("AVG(rating)").
		Scan(&avg).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "查询平均评分失败")
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:               model.ID,
		UserID:           model.UserID,
		BookID:           model.BookID,
		Rating:           model.Rating,
		Comment:          model.Comment,
		VerifiedPurchase: model.VerifiedPurchase,
		Status:           review.ReviewStatus(model.Status),
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
