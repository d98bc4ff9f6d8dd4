package dto

// CreateReviewRequest HTTP创建评论请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"max=2000" example:"内容扎实，例子实用"`
}

// ModerateReviewRequest HTTP审核评论请求(管理端)
type ModerateReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject" example:"approve"`
}

// ReviewResponse HTTP评论响应
type ReviewResponse struct {
	ID               uint   `json:"id" example:"1"`
	UserID           uint   `json:"user_id" example:"1"`
	BookID           uint   `json:"book_id" example:"1"`
	Rating           int    `json:"rating" example:"5"`
	Comment          string `json:"comment"`
	VerifiedPurchase bool   `json:"verified_purchase" example:"true"`
	Status           string `json:"status" example:"已通过"`
	CreatedAt        string `json:"created_at" example:"2026-01-15 10:30:00"`
}

// BookReviewsResponse HTTP图书评论列表响应
type BookReviewsResponse struct {
	List          []ReviewResponse `json:"list"`
	Total         int64            `json:"total" example:"12"`
	AverageRating float64          `json:"average_rating" example:"4.5"`
	Page          int              `json:"page" example:"1"`
	PageSize      int              `json:"page_size" example:"20"`
}
