package dto

// AddCartItemRequest HTTP加购请求
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateCartItemRequest HTTP修改购物车条目请求
// 数量为0表示删除条目
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=999" example:"3"`
}

// CartItemResponse HTTP购物车条目响应
type CartItemResponse struct {
	BookID        uint   `json:"book_id" example:"1"`
	Title         string `json:"title" example:"Go语言实战"`
	Author        string `json:"author" example:"威廉·肯尼迪"`
	UnitPrice     int64  `json:"unit_price" example:"5900"` // 当前价格(分),结账时以届时价格为准
	UnitPriceYuan string `json:"unit_price_yuan" example:"59.00"`
	Quantity      int    `json:"quantity" example:"2"`
	Subtotal      int64  `json:"subtotal" example:"11800"`
	InStock       bool   `json:"in_stock" example:"true"`
}

// CartResponse HTTP购物车响应
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	TotalQuantity  int                `json:"total_quantity" example:"2"`
	TotalPrice     int64              `json:"total_price" example:"11800"` // 按当前价格估算(分)
	TotalPriceYuan string             `json:"total_price_yuan" example:"118.00"`
}
