package wishlist

import (
	"context"
)

// Repository 心愿单仓储接口
type Repository interface {
	// Add 添加条目(已存在时返回ErrDuplicateItem)
	Add(ctx context.Context, item *Item) (*Item, error)

	// Remove 删除条目
	Remove(ctx context.Context, userID, bookID uint) error

	// ListByUserID 查询用户的心愿单(按添加时间倒序)
	ListByUserID(ctx context.Context, userID uint) ([]*Item, error)

	// Exists 是否已在心愿单中
	Exists(ctx context.Context, userID, bookID uint) (bool, error)
}
