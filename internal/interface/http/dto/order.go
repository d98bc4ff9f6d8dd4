package dto

// CheckoutRequest HTTP结账请求
// force_payment_failure用于演练支付失败路径(回滚验证、熔断演练)
type CheckoutRequest struct {
	ForcePaymentFailure bool `json:"force_payment_failure" example:"false"`
}

// OrderItemResponse HTTP订单明细响应(下单时的价格快照)
type OrderItemResponse struct {
	BookID    uint   `json:"book_id" example:"1"`
	Title     string `json:"title" example:"Go语言实战"`
	Author    string `json:"author" example:"威廉·肯尼迪"`
	Quantity  int    `json:"quantity" example:"2"`
	UnitPrice int64  `json:"unit_price" example:"5900"` // 下单时价格(分)
	Subtotal  int64  `json:"subtotal" example:"11800"`
}

// OrderResponse HTTP订单响应
type OrderResponse struct {
	OrderID   uint                `json:"order_id" example:"1"`
	OrderNo   string              `json:"order_no" example:"ORD1767072000123456"`
	UserID    uint                `json:"user_id,omitempty" example:"1"`
	Total     int64               `json:"total" example:"11800"`
	TotalYuan string              `json:"total_yuan" example:"118.00"`
	Status    string              `json:"status" example:"已确认"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt string              `json:"created_at" example:"2026-01-15 10:30:00"`
}

// ListOrdersRequest HTTP订单列表请求(query参数)
type ListOrdersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// UpdateOrderStatusRequest HTTP订单状态变更请求(管理端)
type UpdateOrderStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=ship complete cancel" example:"ship"`
}
