package review

import (
	"context"
	"errors"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/order"
	"github.com/xiebiao/bookmall/internal/domain/review"
)

// ReviewUseCase 评论用例
// 设计说明:
// 1. 购买校验:只有下过单(未取消)的用户才能评论,VerifiedPurchase随之固化
// 2. (user_id, book_id)唯一,先查后插之外由数据库UNIQUE索引兜底并发
// 3. 新评论进入待审核,审核通过后才对外可见
type ReviewUseCase struct {
	reviewRepo review.Repository
	orderRepo  order.Repository
	bookRepo   book.Repository
}

// NewReviewUseCase 创建评论用例
func NewReviewUseCase(
	reviewRepo review.Repository,
	orderRepo order.Repository,
	bookRepo book.Repository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		bookRepo:   bookRepo,
	}
}

// CreateReviewRequest 创建评论请求DTO
type CreateReviewRequest struct {
	UserID  uint
	BookID  uint
	Rating  int    // 1-5
	Comment string // 可为空
}

// ReviewResponse 评论响应DTO
type ReviewResponse struct {
	ID               uint   `json:"id"`
	UserID           uint   `json:"user_id"`
	BookID           uint   `json:"book_id"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	VerifiedPurchase bool   `json:"verified_purchase"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

// Create 创建评论
func (uc *ReviewUseCase) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	// 1. 图书必须存在
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// 2. 购买校验(未取消的订单)
	purchased, err := uc.orderRepo.ExistsByUserAndBook(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, review.ErrNotPurchased
	}

	// 3. 每人每书一条
	existing, err := uc.reviewRepo.FindByUserAndBook(ctx, req.UserID, req.BookID)
	if err == nil && existing != nil {
		return nil, review.ErrDuplicateReview
	}
	if err != nil && !errors.Is(err, review.ErrReviewNotFound) {
		return nil, err
	}

	// 4. 创建(购买校验已通过,VerifiedPurchase固化为true)
	r, err := review.NewReview(req.UserID, req.BookID, req.Rating, req.Comment, true)
	if err != nil {
		return nil, err
	}
	if err := uc.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	return toReviewResponse(r), nil
}

// ListByBookResponse 图书评论列表响应DTO
type ListByBookResponse struct {
	List          []*ReviewResponse `json:"list"`
	Total         int64             `json:"total"`
	AverageRating float64           `json:"average_rating"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}

// ListByBook 查询图书评论(只含已通过,附带平均评分)
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint, page, pageSize int) (*ListByBookResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := uc.reviewRepo.ListByBookID(ctx, bookID, page, pageSize)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewRepo.AverageRating(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &ListByBookResponse{
		List:          toReviewResponses(reviews),
		Total:         total,
		AverageRating: avg,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// ListPending 查询待审核评论(管理端)
func (uc *ReviewUseCase) ListPending(ctx context.Context, page, pageSize int) ([]*ReviewResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := uc.reviewRepo.ListPending(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toReviewResponses(reviews), total, nil
}

// Moderate 审核评论(管理端,action为approve或reject)
func (uc *ReviewUseCase) Moderate(ctx context.Context, reviewID uint, approve bool) (*ReviewResponse, error) {
	r, err := uc.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if approve {
		err = r.Approve()
	} else {
		err = r.Reject()
	}
	if err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// toReviewResponse 领域实体 → 响应DTO
func toReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		BookID:           r.BookID,
		Rating:           r.Rating,
		Comment:          r.Comment,
		VerifiedPurchase: r.VerifiedPurchase,
		Status:           r.Status.String(),
		CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toReviewResponses(reviews []*review.Review) []*ReviewResponse {
	result := make([]*ReviewResponse, len(reviews))
	for i, r := range reviews {
		result[i] = toReviewResponse(r)
	}
	return result
}
