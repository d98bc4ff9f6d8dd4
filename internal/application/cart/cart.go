package cart

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/cart"
)

// CartUseCase 购物车用例
// 设计说明:
// 1. 每个用户恰好一个购物车,首次访问懒创建
// 2. 加购/改量只做轻量库存检查(拦截明显无效操作),
//    权威校验在结账事务内持锁完成
// 3. 响应携带图书信息快照(标题、当前价格),价格以结账时为准
type CartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// CartItemResponse 购物车条目响应DTO
type CartItemResponse struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	UnitPrice int64  `json:"unit_price"` // 当前价格(分),结账时以届时价格为准
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
	InStock   bool   `json:"in_stock"`
}

// CartResponse 购物车响应DTO
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	TotalPrice    int64              `json:"total_price"` // 按当前价格估算的总额(分)
}

// Get 查询购物车(附带图书信息)
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := uc.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toCartResponse(ctx, c)
}

// AddItem 加入购物车(同一本书已存在则数量合并)
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*CartResponse, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// 图书必须存在且有库存(零库存引导用户走缺货预订)
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !b.InStock() {
		return nil, cart.ErrOutOfStock
	}

	c, err := uc.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.cartRepo.UpsertItem(ctx, c.ID, bookID, quantity); err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}

// UpdateItemQuantity 设置条目数量(覆盖,数量归零即删除)
func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, bookID uint, quantity int) (*CartResponse, error) {
	c, err := uc.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.FindItem(bookID) == nil {
		return nil, cart.ErrCartItemNotFound
	}

	if quantity <= 0 {
		err = uc.cartRepo.RemoveItem(ctx, c.ID, bookID)
	} else {
		err = uc.cartRepo.UpdateItemQuantity(ctx, c.ID, bookID, quantity)
	}
	if err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}

// RemoveItem 删除条目
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, bookID uint) (*CartResponse, error) {
	c, err := uc.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.FindItem(bookID) == nil {
		return nil, cart.ErrCartItemNotFound
	}

	if err := uc.cartRepo.RemoveItem(ctx, c.ID, bookID); err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.ClearItems(ctx, c.ID)
}

// toCartResponse 购物车实体 → 响应DTO(批量补齐图书信息)
func (uc *CartUseCase) toCartResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	resp := &CartResponse{Items: []CartItemResponse{}}
	if c.IsEmpty() {
		return resp, nil
	}

	books, err := uc.bookRepo.FindByIDs(ctx, c.BookIDs())
	if err != nil {
		return nil, err
	}
	bookMap := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		bookMap[b.ID] = b
	}

	for _, item := range c.Items {
		b, ok := bookMap[item.BookID]
		if !ok {
			// 图书已下架,条目跳过展示(结账时会因查不到而失败,由用户删除)
			continue
		}
		subtotal := b.Price * int64(item.Quantity)
		resp.Items = append(resp.Items, CartItemResponse{
			BookID:    b.ID,
			Title:     b.Title,
			Author:    b.Author,
			UnitPrice: b.Price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
			InStock:   b.InStock(),
		})
		resp.TotalQuantity += item.Quantity
		resp.TotalPrice += subtotal
	}

	return resp, nil
}
