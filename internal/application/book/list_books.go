package book

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/review"
)

// ListBooksUseCase 图书列表查询用例(公开接口)
// 设计说明:
// 1. 支持分页、关键词搜索、分类筛选、只看有货、排序
// 2. 列表查询不返回description字段(减少数据传输量)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、作者)
	GenreID  uint   // 分类筛选(0表示不筛选)
	InStock  bool   // 只看有库存
	SortBy   string // 排序方式(price_asc, price_desc, created_at_desc)
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID       uint   `json:"id"`
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	GenreID  uint   `json:"genre_id"`
	Price    int64  `json:"price"` // 价格(分)
	Stock    int    `json:"stock"`
	InStock  bool   `json:"in_stock"`
	CoverURL string `json:"cover_url"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20 // 默认每页20条
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // 最大每页100条
	}

	// 2. 构建Repository查询参数
	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		InStock:  req.InStock,
		SortBy:   req.SortBy,
	}

	// 3. 执行查询
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	// 4. 转换为DTO
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:       b.ID,
			ISBN:     b.ISBN,
			Title:    b.Title,
			Author:   b.Author,
			GenreID:  b.GenreID,
			Price:    b.Price,
			Stock:    b.Stock,
			InStock:  b.InStock(),
			CoverURL: b.CoverURL,
		}
	}

	// 5. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetBookUseCase 图书详情查询用例(公开接口)
// 详情附带平均评分(只统计审核通过的评论)
type GetBookUseCase struct {
	bookService book.Service
	reviewRepo  review.Repository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, reviewRepo review.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		reviewRepo:  reviewRepo,
	}
}

// BookDetailResponse 详情响应DTO
type BookDetailResponse struct {
	BookResponse
	AverageRating float64 `json:"average_rating"` // 平均评分(无评论为0)
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookDetailResponse, error) {
	b, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewRepo.AverageRating(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &BookDetailResponse{
		BookResponse:  *toBookResponse(b),
		AverageRating: avg,
	}, nil
}
