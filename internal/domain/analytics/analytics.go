package analytics

import (
	"context"
	"time"
)

// Summary 销售汇总(管理端分析)
type Summary struct {
	TotalRevenue int64 `json:"total_revenue"` // 总销售额(分),SUM(quantity*unit_price),无订单时为0
	TotalOrders  int64 `json:"total_orders"`  // 订单总数
	TotalUnits   int64 `json:"total_units"`   // 售出总件数
}

// TopBook 畅销图书
type TopBook struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	UnitsSold int64  `json:"units_sold"`
	Revenue   int64  `json:"revenue"` // 销售额(分)
}

// DailyRevenue 按天销售额
type DailyRevenue struct {
	Date    time.Time `json:"date"`
	Revenue int64     `json:"revenue"`
	Orders  int64     `json:"orders"`
}

// Repository 分析仓储接口(只读聚合查询)
// 设计说明:统计口径只含已确认及之后状态的订单,金额取订单行的
// 价格快照(quantity*unit_price),与改价解耦
type Repository interface {
	// GetSummary 销售汇总(时间范围可选,零值表示不限)
	GetSummary(ctx context.Context, from, to time.Time) (*Summary, error)

	// TopBooks 按销量排序的畅销图书
	TopBooks(ctx context.Context, limit int) ([]*TopBook, error)

	// RevenueByDay 按天统计销售额
	RevenueByDay(ctx context.Context, from, to time.Time) ([]*DailyRevenue, error)
}
