package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookmall/internal/application/cart"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/response"
)

// CartHandler 购物车HTTP处理器(全部接口需登录)
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Description  查询当前用户购物车，附带图书信息与按当前价格估算的总额
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartDTO(result))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一本书已在购物车时数量合并；零库存图书不可加购
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "加购信息"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "图书暂无库存"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.AddItem(c.Request.Context(), userID, req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartDTO(result))
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目数量
// @Description  覆盖式设置数量，数量为0等价于删除条目
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{book_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.UpdateItemQuantity(c.Request.Context(), userID, bookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartDTO(result))
}

// RemoveItem 删除条目
// @Summary      删除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, err := parseUintParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.RemoveItem(c.Request.Context(), userID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartDTO(result))
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      204 "清空成功"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.cartUseCase.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// toCartDTO 应用层DTO → HTTP层DTO
func toCartDTO(r *appcart.CartResponse) *dto.CartResponse {
	items := make([]dto.CartItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = dto.CartItemResponse{
			BookID:        item.BookID,
			Title:         item.Title,
			Author:        item.Author,
			UnitPrice:     item.UnitPrice,
			UnitPriceYuan: dto.FormatPriceYuan(item.UnitPrice),
			Quantity:      item.Quantity,
			Subtotal:      item.Subtotal,
			InStock:       item.InStock,
		}
	}

	return &dto.CartResponse{
		Items:          items,
		TotalQuantity:  r.TotalQuantity,
		TotalPrice:     r.TotalPrice,
		TotalPriceYuan: dto.FormatPriceYuan(r.TotalPrice),
	}
}
