package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookmall/internal/application/order"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase *apporder.CheckoutUseCase
	queryUseCase    *apporder.OrderQueryUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	queryUseCase *apporder.OrderQueryUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase: checkoutUseCase,
		queryUseCase:    queryUseCase,
	}
}

// Checkout 购物车结账
// @Summary      结账
// @Description  将购物车一次性结算为订单。单个数据库事务内完成:
// @Description  锁定图书行(按ID升序FOR UPDATE)→校验库存(全有或全无)→
// @Description  扣款→落单→扣库存→清空购物车。任何一步失败整单回滚,购物车保留。
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest false "结账选项"
// @Success      201 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      402 {object} response.Response "支付被拒绝"
// @Failure      409 {object} response.Response "库存不足(details含逐行明细)或锁等待超时"
// @Failure      422 {object} response.Response "购物车为空"
// @Router       /api/v1/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	// 请求体可为空(全部选项取默认值)
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
			return
		}
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:              userID,
		ForcePaymentFailure: req.ForcePaymentFailure,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.OrderResponse{
		OrderID:   result.OrderID,
		OrderNo:   result.OrderNo,
		Total:     result.Total,
		TotalYuan: result.TotalYuan,
		Status:    result.Status,
		Items:     toOrderItemDTOs(result.Items),
		CreatedAt: result.CreatedAt,
	})
}

// ListMyOrders 我的订单列表
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	orders, total, err := h.queryUseCase.ListByUser(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	response.SuccessWithPage(c, toOrderDTOs(orders), total, page, pageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  普通用户只能查看自己的订单，管理员可查看任意订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.queryUseCase.Get(c.Request.Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderDTO(result))
}

// ListAllOrders 全部订单(管理端)
// @Summary      全部订单
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/orders [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	orders, total, err := h.queryUseCase.ListAll(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	response.SuccessWithPage(c, toOrderDTOs(orders), total, page, pageSize)
}

// UpdateOrderStatus 订单状态变更(管理端)
// @Summary      订单状态变更
// @Description  走状态机校验:已确认→已发货/已取消，已发货→已完成
// @Tags         管理端
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "操作"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "非法的状态转换"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.queryUseCase.UpdateStatus(c.Request.Context(), orderID, req.Action)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderDTO(result))
}

// =========================================
// 辅助函数
// =========================================

func toOrderItemDTOs(items []apporder.CheckoutItemResp) []dto.OrderItemResponse {
	result := make([]dto.OrderItemResponse, len(items))
	for i, item := range items {
		result[i] = dto.OrderItemResponse{
			BookID:    item.BookID,
			Title:     item.Title,
			Author:    item.Author,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return result
}

func toOrderDTO(o *apporder.OrderResponse) *dto.OrderResponse {
	return &dto.OrderResponse{
		OrderID:   o.OrderID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total,
		TotalYuan: o.TotalYuan,
		Status:    o.Status,
		Items:     toOrderItemDTOs(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func toOrderDTOs(orders []*apporder.OrderResponse) []*dto.OrderResponse {
	result := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = toOrderDTO(o)
	}
	return result
}
