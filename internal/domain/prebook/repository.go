package prebook

import (
	"context"
)

// Repository 预订仓储接口
type Repository interface {
	// Create 创建预订
	// 同一用户同一本书已有waiting预订时返回ErrDuplicatePreBook
	Create(ctx context.Context, preBook *PreBook) error

	// FindByID 根据ID查找预订
	FindByID(ctx context.Context, id uint) (*PreBook, error)

	// ListByUserID 查询用户的预订列表
	ListByUserID(ctx context.Context, userID uint) ([]*PreBook, error)

	// ListWaitingByBookID 查询图书的全部等待中预订(补货通知使用)
	ListWaitingByBookID(ctx context.Context, bookID uint) ([]*PreBook, error)

	// Update 更新预订(状态流转)
	Update(ctx context.Context, preBook *PreBook) error
}
