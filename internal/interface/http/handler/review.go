package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookmall/internal/application/review"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	reviewUseCase *appreview.ReviewUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// CreateReview 发表评论
// @Summary      发表评论
// @Description  只有购买过该书的用户可以评论，每人每书一条，新评论待审核
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评论内容"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      403 {object} response.Response "未购买过该图书"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已评论过"
// @Router       /api/v1/books/{book_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.reviewUseCase.Create(c.Request.Context(), appreview.CreateReviewRequest{
		UserID:  userID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toReviewDTO(result))
}

// ListBookReviews 图书评论列表
// @Summary      图书评论列表
// @Description  只返回审核通过的评论，附带平均评分
// @Tags         评论
// @Produce      json
// @Param        book_id path int true "图书ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=dto.BookReviewsResponse}
// @Router       /api/v1/books/{book_id}/reviews [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.ListOrdersRequest // 复用分页参数结构
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ReviewResponse, len(result.List))
	for i, r := range result.List {
		list[i] = *toReviewDTO(r)
	}

	response.Success(c, &dto.BookReviewsResponse{
		List:          list,
		Total:         result.Total,
		AverageRating: result.AverageRating,
		Page:          result.Page,
		PageSize:      result.PageSize,
	})
}

// ListPendingReviews 待审核评论(管理端)
// @Summary      待审核评论
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/reviews/pending [get]
func (h *ReviewHandler) ListPendingReviews(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	reviews, total, err := h.reviewUseCase.ListPending(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		list[i] = toReviewDTO(r)
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// ModerateReview 审核评论(管理端)
// @Summary      审核评论
// @Description  approve通过/reject驳回，仅待审核状态可操作
// @Tags         管理端
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Param        request body dto.ModerateReviewRequest true "操作"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "评论不存在"
// @Router       /api/v1/admin/reviews/{id} [put]
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	reviewID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的评论ID")
		return
	}

	var req dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUseCase.Moderate(c.Request.Context(), reviewID, req.Action == "approve")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewDTO(result))
}

// toReviewDTO 应用层DTO → HTTP层DTO
func toReviewDTO(r *appreview.ReviewResponse) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		BookID:           r.BookID,
		Rating:           r.Rating,
		Comment:          r.Comment,
		VerifiedPurchase: r.VerifiedPurchase,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
}
