package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmall/internal/domain/prebook"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// preBookRepository 预订仓储实现(MySQL)
type preBookRepository struct {
	db *gorm.DB
}

// NewPreBookRepository 创建预订仓储
func NewPreBookRepository(db *gorm.DB) prebook.Repository {
	return &preBookRepository{db: db}
}

// Create 创建预订
// 同一用户同一本书已有waiting预订时返回ErrDuplicatePreBook
// (状态流转后允许再次预订,唯一性在应用层SELECT校验)
func (r *preBookRepository) Create(ctx context.Context, p *prebook.PreBook) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&PreBookModel{}).
		Where("user_id = ? AND book_id = ?", p.UserID, p.BookID).
		Where("status = ?", int(prebook.PreBookStatusWaiting)).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(err, "查询预订记录失败")
	}
	if count > 0 {
		return prebook.ErrDuplicatePreBook
	}

	model := &PreBookModel{
		UserID: p.UserID,
		BookID: p.BookID,
		Status: int(p.Status),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建预订失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找预订
func (r *preBookRepository) FindByID(ctx context.Context, id uint) (*prebook.PreBook, error) {
	var model PreBookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prebook.ErrPreBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询预订失败")
	}

	return toPreBookEntity(&model), nil
}

// ListByUserID 查询用户的预订列表
func (r *preBookRepository) ListByUserID(ctx context.Context, userID uint) ([]*prebook.PreBook, error) {
	var models []PreBookModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询预订列表失败")
	}

	preBooks := make([]*prebook.PreBook, len(models))
	for i := range models {
		preBooks[i] = toPreBookEntity(&models[i])
	}
	return preBooks, nil
}

// ListWaitingByBookID 查询图书的全部等待中预订(补货通知)
// 说明:补货用例在持有图书行锁的事务内调用,getDB参与事务
func (r *preBookRepository) ListWaitingByBookID(ctx context.Context, bookID uint) ([]*prebook.PreBook, error) {
	var models []PreBookModel
	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Where("status = ?", int(prebook.PreBookStatusWaiting)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询等待中预订失败")
	}

	preBooks := make([]*prebook.PreBook, len(models))
	for i := range models {
		preBooks[i] = toPreBookEntity(&models[i])
	}
	return preBooks, nil
}

// Update 更新预订(状态流转)
func (r *preBookRepository) Update(ctx context.Context, p *prebook.PreBook) error {
	db := r.getDB(ctx)
	result := db.WithContext(ctx).Model(&PreBookModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":      int(p.Status),
			"notified_at": p.NotifiedAt,
			"updated_at":  p.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新预订失败")
	}
	if result.RowsAffected == 0 {
		return prebook.ErrPreBookNotFound
	}
	return nil
}

// toPreBookEntity GORM模型 → 领域实体
func toPreBookEntity(model *PreBookModel) *prebook.PreBook {
	return &prebook.PreBook{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		Status:     prebook.PreBookStatus(model.Status),
		NotifiedAt: model.NotifiedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *preBookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
