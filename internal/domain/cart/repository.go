package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. 每个用户一个购物车,GetOrCreate保证懒创建的幂等性
// 2. (cart_id, book_id)的唯一性由数据库UNIQUE索引保证
// 3. ClearItems在结账事务内调用(通过context传递事务)
type Repository interface {
	// GetOrCreateByUserID 获取用户购物车,不存在则创建
	GetOrCreateByUserID(ctx context.Context, userID uint) (*Cart, error)

	// GetWithItems 获取购物车及全部条目
	GetWithItems(ctx context.Context, userID uint) (*Cart, error)

	// UpsertItem 新增或合并条目
	// 同一本书已在购物车时数量累加,否则插入新条目
	UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error

	// UpdateItemQuantity 设置条目数量(覆盖,不累加)
	UpdateItemQuantity(ctx context.Context, cartID, bookID uint, quantity int) error

	// RemoveItem 删除条目
	RemoveItem(ctx context.Context, cartID, bookID uint) error

	// ClearItems 清空购物车条目(结账成功后在同一事务内调用)
	ClearItems(ctx context.Context, cartID uint) error
}
