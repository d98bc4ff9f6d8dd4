package admin

import (
	"context"
	"time"

	"github.com/xiebiao/bookmall/internal/domain/analytics"
)

// AnalyticsUseCase 销售分析用例(仅管理员)
// 统计口径:不含已取消订单,金额取订单行的价格快照
type AnalyticsUseCase struct {
	analyticsRepo analytics.Repository
}

// NewAnalyticsUseCase 创建分析用例
func NewAnalyticsUseCase(analyticsRepo analytics.Repository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// SummaryRequest 汇总请求DTO(时间范围可选)
type SummaryRequest struct {
	From time.Time
	To   time.Time
}

// SummaryResponse 汇总响应DTO
type SummaryResponse struct {
	TotalRevenue int64 `json:"total_revenue"` // 总销售额(分)
	TotalOrders  int64 `json:"total_orders"`
	TotalUnits   int64 `json:"total_units"`
}

// GetSummary 销售汇总
func (uc *AnalyticsUseCase) GetSummary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	s, err := uc.analyticsRepo.GetSummary(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		TotalRevenue: s.TotalRevenue,
		TotalOrders:  s.TotalOrders,
		TotalUnits:   s.TotalUnits,
	}, nil
}

// TopBooks 按销量排序的畅销图书
func (uc *AnalyticsUseCase) TopBooks(ctx context.Context, limit int) ([]*analytics.TopBook, error) {
	if limit < 1 {
		limit = 10 // 默认前10
	}
	if limit > 100 {
		limit = 100
	}
	return uc.analyticsRepo.TopBooks(ctx, limit)
}

// RevenueByDay 按天统计销售额
func (uc *AnalyticsUseCase) RevenueByDay(ctx context.Context, from, to time.Time) ([]*analytics.DailyRevenue, error) {
	return uc.analyticsRepo.RevenueByDay(ctx, from, to)
}
