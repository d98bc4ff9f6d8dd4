package handler

import (
	"github.com/gin-gonic/gin"

	appwishlist "github.com/xiebiao/bookmall/internal/application/wishlist"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器(全部接口需登录)
type WishlistHandler struct {
	wishlistUseCase *appwishlist.WishlistUseCase
}

// NewWishlistHandler 创建心愿单处理器
func NewWishlistHandler(wishlistUseCase *appwishlist.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{wishlistUseCase: wishlistUseCase}
}

// AddItem 添加到心愿单
// @Summary      添加到心愿单
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddWishlistRequest true "图书"
// @Success      201 {object} response.Response{data=dto.WishlistItemResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已在心愿单中"
// @Router       /api/v1/wishlist [post]
func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req dto.AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.wishlistUseCase.Add(c.Request.Context(), userID, req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWishlistDTO(result))
}

// List 我的心愿单
// @Summary      我的心愿单
// @Description  按添加时间倒序
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.WishlistItemResponse}
// @Router       /api/v1/wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	items, err := h.wishlistUseCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.WishlistItemResponse, len(items))
	for i, item := range items {
		list[i] = toWishlistDTO(item)
	}
	response.Success(c, list)
}

// RemoveItem 从心愿单删除
// @Summary      从心愿单删除
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/wishlist/{book_id} [delete]
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.wishlistUseCase.Remove(c.Request.Context(), userID, bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// toWishlistDTO 应用层DTO → HTTP层DTO
func toWishlistDTO(item *appwishlist.WishlistItemResponse) *dto.WishlistItemResponse {
	return &dto.WishlistItemResponse{
		BookID:    item.BookID,
		Title:     item.Title,
		Author:    item.Author,
		Price:     item.Price,
		PriceYuan: dto.FormatPriceYuan(item.Price),
		InStock:   item.InStock,
		CoverURL:  item.CoverURL,
		AddedAt:   item.AddedAt,
	}
}
