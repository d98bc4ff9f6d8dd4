package wishlist

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/wishlist"
)

// WishlistUseCase 心愿单用例
// 重复添加幂等返回已有条目,列表按添加时间倒序并补齐图书信息
type WishlistUseCase struct {
	wishlistRepo wishlist.Repository
	bookRepo     book.Repository
}

// NewWishlistUseCase 创建心愿单用例
func NewWishlistUseCase(wishlistRepo wishlist.Repository, bookRepo book.Repository) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		bookRepo:     bookRepo,
	}
}

// WishlistItemResponse 心愿单条目响应DTO
type WishlistItemResponse struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	InStock  bool   `json:"in_stock"`
	CoverURL string `json:"cover_url"`
	AddedAt  string `json:"added_at"`
}

// Add 添加到心愿单
func (uc *WishlistUseCase) Add(ctx context.Context, userID, bookID uint) (*WishlistItemResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	item, err := uc.wishlistRepo.Add(ctx, wishlist.NewItem(userID, bookID))
	if err != nil {
		return nil, err
	}

	return toItemResponse(item, b), nil
}

// Remove 从心愿单删除
func (uc *WishlistUseCase) Remove(ctx context.Context, userID, bookID uint) error {
	return uc.wishlistRepo.Remove(ctx, userID, bookID)
}

// List 查询心愿单(按添加时间倒序)
func (uc *WishlistUseCase) List(ctx context.Context, userID uint) ([]*WishlistItemResponse, error) {
	items, err := uc.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*WishlistItemResponse{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}
	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookMap := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		bookMap[b.ID] = b
	}

	result := make([]*WishlistItemResponse, 0, len(items))
	for _, item := range items {
		b, ok := bookMap[item.BookID]
		if !ok {
			continue // 图书已下架
		}
		result = append(result, toItemResponse(item, b))
	}
	return result, nil
}

func toItemResponse(item *wishlist.Item, b *book.Book) *WishlistItemResponse {
	return &WishlistItemResponse{
		BookID:   b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		InStock:  b.InStock(),
		CoverURL: b.CoverURL,
		AddedAt:  item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
