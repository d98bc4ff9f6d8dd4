package book

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
)

// ManageBookUseCase 图书管理用例(仅管理员)
// 改信息、改价、下架。库存修改不在这里,补货走SetStockUseCase(需要行锁和到货通知)
type ManageBookUseCase struct {
	bookService book.Service
}

// NewManageBookUseCase 创建图书管理用例
func NewManageBookUseCase(bookService book.Service) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求DTO(空字段不修改)
type UpdateBookRequest struct {
	BookID      uint
	Title       string
	Author      string
	Description string
	GenreID     uint  // 0表示不修改
	Price       int64 // 0表示不修改
}

// UpdateBook 更新图书信息与价格
// 说明:改价只影响后续订单,已生成的订单行保留下单时的价格快照
func (uc *ManageBookUseCase) UpdateBook(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	if req.Title != "" || req.Author != "" || req.Description != "" || req.GenreID != 0 {
		if err := uc.bookService.UpdateBookInfo(ctx, req.BookID, req.Title, req.Author, req.Description, req.GenreID); err != nil {
			return nil, err
		}
	}

	if req.Price != 0 {
		if err := uc.bookService.UpdateBookPrice(ctx, req.BookID, req.Price); err != nil {
			return nil, err
		}
	}

	b, err := uc.bookService.GetBookByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// DeleteBook 下架图书(软删除)
func (uc *ManageBookUseCase) DeleteBook(ctx context.Context, bookID uint) error {
	return uc.bookService.DeleteBook(ctx, bookID)
}

// =========================================
// 分类用例
// =========================================

// GenreUseCase 分类用例(创建仅管理员,查询公开)
type GenreUseCase struct {
	bookService book.Service
}

// NewGenreUseCase 创建分类用例
func NewGenreUseCase(bookService book.Service) *GenreUseCase {
	return &GenreUseCase{bookService: bookService}
}

// GenreResponse 分类响应DTO
type GenreResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateGenre 创建分类
func (uc *GenreUseCase) CreateGenre(ctx context.Context, name, description string) (*GenreResponse, error) {
	g, err := uc.bookService.CreateGenre(ctx, name, description)
	if err != nil {
		return nil, err
	}
	return &GenreResponse{ID: g.ID, Name: g.Name, Description: g.Description}, nil
}

// ListGenres 查询全部分类
func (uc *GenreUseCase) ListGenres(ctx context.Context) ([]*GenreResponse, error) {
	genres, err := uc.bookService.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*GenreResponse, len(genres))
	for i, g := range genres {
		result[i] = &GenreResponse{ID: g.ID, Name: g.Name, Description: g.Description}
	}
	return result, nil
}
