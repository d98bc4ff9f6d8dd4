package review

import (
	"context"
)

// Repository 评论仓储接口
// 设计说明:(user_id, book_id)唯一性由数据库UNIQUE索引保证,
// 并发重复提交时Create返回ErrDuplicateReview
type Repository interface {
	// Create 创建评论
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找评论
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByUserAndBook 查找用户对某本书的评论
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// ListByBookID 查询图书的评论列表(只含已通过,分页)
	ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*Review, int64, error)

	// ListPending 查询待审核评论(管理端,分页)
	ListPending(ctx context.Context, page, pageSize int) ([]*Review, int64, error)

	// Update 更新评论(审核状态流转)
	Update(ctx context.Context, review *Review) error

	// AverageRating 图书的平均评分(只统计已通过的评论,无评论返回0)
	AverageRating(ctx context.Context, bookID uint) (float64, error)
}
