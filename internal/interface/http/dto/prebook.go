package dto

// CreatePreBookRequest HTTP创建预订请求
type CreatePreBookRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// PreBookResponse HTTP预订响应
type PreBookResponse struct {
	ID         uint   `json:"id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	BookTitle  string `json:"book_title,omitempty" example:"Go语言实战"`
	Status     string `json:"status" example:"等待到货"`
	NotifiedAt string `json:"notified_at,omitempty"`
	CreatedAt  string `json:"created_at" example:"2026-01-15 10:30:00"`
}

// AddWishlistRequest HTTP添加心愿单请求
type AddWishlistRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// WishlistItemResponse HTTP心愿单条目响应
type WishlistItemResponse struct {
	BookID    uint   `json:"book_id" example:"1"`
	Title     string `json:"title" example:"Go语言实战"`
	Author    string `json:"author" example:"威廉·肯尼迪"`
	Price     int64  `json:"price" example:"5900"`
	PriceYuan string `json:"price_yuan" example:"59.00"`
	InStock   bool   `json:"in_stock" example:"true"`
	CoverURL  string `json:"cover_url"`
	AddedAt   string `json:"added_at" example:"2026-01-15 10:30:00"`
}
