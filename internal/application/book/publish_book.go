package book

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
)

// PublishBookUseCase 图书上架用例(仅管理员)
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 业务规则校验(ISBN格式、价格范围、分类存在性)由领域服务负责
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
	}
}

// PublishBookRequest 上架请求DTO
type PublishBookRequest struct {
	ISBN        string // ISBN号
	Title       string // 书名
	Author      string // 作者
	GenreID     uint   // 分类ID
	Price       int64  // 价格(分)
	Stock       int    // 初始库存
	CoverURL    string // 封面图URL
	Description string // 图书描述
}

// BookResponse 图书响应DTO
type BookResponse struct {
	ID          uint   `json:"id"`
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	GenreID     uint   `json:"genre_id"`
	Price       int64  `json:"price"` // 价格(分)
	Stock       int    `json:"stock"`
	InStock     bool   `json:"in_stock"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行上架用例
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.PublishBook(
		ctx,
		req.ISBN,
		req.Title,
		req.Author,
		req.GenreID,
		req.Price,
		req.Stock,
		req.CoverURL,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		GenreID:     b.GenreID,
		Price:       b.Price,
		Stock:       b.Stock,
		InStock:     b.InStock(),
		CoverURL:    b.CoverURL,
		Description: b.Description,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
