package dto

import "github.com/shopspring/decimal"

// PublishBookRequest HTTP上架请求(仅管理员)
type PublishBookRequest struct {
	ISBN        string `json:"isbn" binding:"required" example:"9787115428028"`
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author      string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	GenreID     uint   `json:"genre_id" binding:"required" example:"1"`
	Price       int64  `json:"price" binding:"required,min=1,max=999999" example:"5900"` // 价格(分),59.00元
	Stock       int    `json:"stock" binding:"min=0" example:"100"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	Description string `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
}

// UpdateBookRequest HTTP更新图书请求(空字段不修改)
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Author      string `json:"author" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	GenreID     uint   `json:"genre_id" binding:"omitempty"`
	Price       int64  `json:"price" binding:"omitempty,min=1,max=999999"`
}

// SetStockRequest HTTP补货请求
type SetStockRequest struct {
	Stock int `json:"stock" binding:"min=0" example:"50"` // 目标库存(覆盖)
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint    `json:"id" example:"1"`
	ISBN          string  `json:"isbn" example:"9787115428028"`
	Title         string  `json:"title" example:"Go语言实战"`
	Author        string  `json:"author" example:"威廉·肯尼迪"`
	GenreID       uint    `json:"genre_id" example:"1"`
	Price         int64   `json:"price" example:"5900"`
	PriceYuan     string  `json:"price_yuan" example:"59.00"` // 价格(元),方便前端显示
	Stock         int     `json:"stock" example:"100"`
	InStock       bool    `json:"in_stock" example:"true"`
	CoverURL      string  `json:"cover_url" example:"https://example.com/cover.jpg"`
	Description   string  `json:"description,omitempty"`
	AverageRating float64 `json:"average_rating,omitempty" example:"4.5"`
	CreatedAt     string  `json:"created_at" example:"2026-01-15 10:30:00"`
}

// BookListItem HTTP图书列表项(不含Description)
type BookListItem struct {
	ID        uint   `json:"id" example:"1"`
	ISBN      string `json:"isbn" example:"9787115428028"`
	Title     string `json:"title" example:"Go语言实战"`
	Author    string `json:"author" example:"威廉·肯尼迪"`
	GenreID   uint   `json:"genre_id" example:"1"`
	Price     int64  `json:"price" example:"5900"`
	PriceYuan string `json:"price_yuan" example:"59.00"`
	Stock     int    `json:"stock" example:"100"`
	InStock   bool   `json:"in_stock" example:"true"`
	CoverURL  string `json:"cover_url" example:"https://example.com/cover.jpg"`
}

// ListBooksRequest HTTP图书列表请求(query参数)
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	GenreID  uint   `form:"genre_id" binding:"omitempty"`
	InStock  bool   `form:"in_stock" binding:"omitempty"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// CreateGenreRequest HTTP创建分类请求
type CreateGenreRequest struct {
	Name        string `json:"name" binding:"required,max=50" example:"计算机"`
	Description string `json:"description" binding:"max=500"`
}

// GenreResponse HTTP分类响应
type GenreResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"计算机"`
	Description string `json:"description"`
}

// FormatPriceYuan 格式化价格(分→元)
// 使用decimal精确转换:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	return decimal.NewFromInt(priceFen).Div(decimal.NewFromInt(100)).StringFixed(2)
}
