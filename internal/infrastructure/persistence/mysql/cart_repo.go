package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookmall/internal/domain/cart"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 每个用户一个购物车(user_id唯一索引)
// 2. 条目合并用ON DUPLICATE KEY UPDATE,避免SELECT再INSERT的并发窗口
// 3. ClearItems参与结账事务(getDB从context提取事务DB)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// GetOrCreateByUserID 获取用户购物车,不存在则创建
// 并发安全:插入撞到user_id唯一索引时重查一次
// 结账事务内调用时购物车行的读写也必须参与事务(getDB)
func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := r.getDB(ctx)

	var model CartModel
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err == nil {
		return toCartEntity(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	model = CartModel{UserID: userID}
	if err := db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateError(err) {
			// 并发创建,重查
			if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
				return nil, apperrors.Wrap(err, "查询购物车失败")
			}
			return toCartEntity(&model), nil
		}
		return nil, apperrors.Wrap(err, "创建购物车失败")
	}

	return toCartEntity(&model), nil
}

// GetWithItems 获取购物车及全部条目
func (r *cartRepository) GetWithItems(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := r.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []CartItemModel
	db := r.getDB(ctx)
	err = db.WithContext(ctx).
		Where("cart_id = ?", c.ID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	c.Items = make([]cart.CartItem, len(items))
	for i := range items {
		c.Items[i] = toCartItemEntity(&items[i])
	}
	return c, nil
}

// UpsertItem 新增或合并条目
// 使用ON DUPLICATE KEY UPDATE原子合并数量,
// (cart_id, book_id)唯一索引保证同一本书只有一行
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}

	model := CartItemModel{
		CartID:   cartID,
		BookID:   bookID,
		Quantity: quantity,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", quantity)}),
		}).
		Create(&model).Error

	if err != nil {
		return apperrors.Wrap(err, "添加购物车条目失败")
	}
	return nil
}

// UpdateItemQuantity 设置条目数量(覆盖,不累加)
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, bookID uint, quantity int) error {
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}

	result := r.db.WithContext(ctx).Model(&CartItemModel{}).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Update("quantity", quantity)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 删除条目
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Delete(&CartItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

// ClearItems 清空购物车条目
// 结账成功后在同一事务内调用,必须通过getDB参与事务
func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&CartItemModel{}).Error

	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) *cart.Cart {
	return &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) cart.CartItem {
	return cart.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
