package order

import (
	"context"
)

// PaymentGateway 支付网关接口
// 设计说明:
// 1. 结账事务中扣款只调用一次:要么全单成功,要么全单失败
// 2. forceFail用于演练支付失败路径(请求参数透传),网关实现可忽略
// 3. 返回(false, nil)表示支付被拒绝(业务失败),error表示网关本身不可用
type PaymentGateway interface {
	// Charge 扣款
	Charge(ctx context.Context, userID uint, amount int64, forceFail bool) (bool, error)
}

// StockShortage 库存不足明细(结账校验失败时逐行返回)
type StockShortage struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Requested int    `json:"requested"` // 请求数量
	Available int    `json:"available"` // 当前可用库存
}
