package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmall/internal/domain/wishlist"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// wishlistRepository 心愿单仓储实现(MySQL)
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

// Add 添加条目
// (user_id, book_id)唯一索引,重复添加返回ErrDuplicateWishlistItem
func (r *wishlistRepository) Add(ctx context.Context, item *wishlist.Item) (*wishlist.Item, error) {
	model := &WishlistItemModel{
		UserID: item.UserID,
		BookID: item.BookID,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return nil, wishlist.ErrDuplicateItem
		}
		return nil, apperrors.Wrap(err, "添加心愿单条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return item, nil
}

// Remove 删除条目
func (r *wishlistRepository) Remove(ctx context.Context, userID, bookID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&WishlistItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除心愿单条目失败")
	}
	if result.RowsAffected == 0 {
		return wishlist.ErrItemNotFound
	}
	return nil
}

// ListByUserID 查询用户的心愿单(按添加时间倒序)
func (r *wishlistRepository) ListByUserID(ctx context.Context, userID uint) ([]*wishlist.Item, error) {
	var models []WishlistItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}

	items := make([]*wishlist.Item, len(models))
	for i := range models {
		items[i] = toWishlistEntity(&models[i])
	}
	return items, nil
}

// Exists 是否已在心愿单中
func (r *wishlistRepository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WishlistItemModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询心愿单失败")
	}
	return count > 0, nil
}

// toWishlistEntity GORM模型 → 领域实体
func toWishlistEntity(model *WishlistItemModel) *wishlist.Item {
	return &wishlist.Item{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		CreatedAt: model.CreatedAt,
	}
}
