package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmall/internal/domain/analytics"
	"github.com/xiebiao/bookmall/internal/domain/order"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// analyticsRepository 分析仓储实现(MySQL,只读聚合查询)
// 设计说明:
// 1. 金额口径取订单行的价格快照SUM(quantity * unit_price),与改价解耦
// 2. 已取消订单不计入统计
// 3. COALESCE保证空表返回0而不是NULL
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建分析仓储
func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &analyticsRepository{db: db}
}

// GetSummary 销售汇总
func (r *analyticsRepository) GetSummary(ctx context.Context, from, to time.Time) (*analytics.Summary, error) {
	query := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", int(order.OrderStatusCancelled))

	query = applyTimeRange(query, from, to)

	var row struct {
		TotalRevenue int64
		TotalOrders  int64
		TotalUnits   int64
	}
	err := query.Select(
		"COALESCE(SUM(order_items.quantity * order_items.unit_price), 0) AS total_revenue, " +
			"COUNT(DISTINCT orders.id) AS total_orders, " +
			"COALESCE(SUM(order_items.quantity), 0) AS total_units").
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售汇总失败")
	}

	return &analytics.Summary{
		TotalRevenue: row.TotalRevenue,
		TotalOrders:  row.TotalOrders,
		TotalUnits:   row.TotalUnits,
	}, nil
}

// TopBooks 按销量排序的畅销图书
func (r *analyticsRepository) TopBooks(ctx context.Context, limit int) ([]*analytics.TopBook, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []struct {
		BookID    uint
		Title     string
		UnitsSold int64
		Revenue   int64
	}
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", int(order.OrderStatusCancelled)).
		Select("order_items.book_id AS book_id, " +
			"MAX(order_items.title) AS title, " + // 快照书名,同一book_id取任意一条
			"SUM(order_items.quantity) AS units_sold, " +
			"SUM(order_items.quantity * order_items.unit_price) AS revenue").
		Group("order_items.book_id").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询畅销图书失败")
	}

	books := make([]*analytics.TopBook, len(rows))
	for i, row := range rows {
		books[i] = &analytics.TopBook{
			BookID:    row.BookID,
			Title:     row.Title,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
		}
	}
	return books, nil
}

// RevenueByDay 按天统计销售额
func (r *analyticsRepository) RevenueByDay(ctx context.Context, from, to time.Time) ([]*analytics.DailyRevenue, error) {
	query := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", int(order.OrderStatusCancelled))

	query = applyTimeRange(query, from, to)

	var rows []struct {
		Day     time.Time
		Revenue int64
		Orders  int64
	}
	err := query.Select("DATE(orders.created_at) AS day, " +
		"COALESCE(SUM(order_items.quantity * order_items.unit_price), 0) AS revenue, " +
		"COUNT(DISTINCT orders.id) AS orders").
		Group("DATE(orders.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询按天销售额失败")
	}

	result := make([]*analytics.DailyRevenue, len(rows))
	for i, row := range rows {
		result[i] = &analytics.DailyRevenue{
			Date:    row.Day,
			Revenue: row.Revenue,
			Orders:  row.Orders,
		}
	}
	return result, nil
}

// applyTimeRange 应用可选的时间范围过滤(零值表示不限)
func applyTimeRange(query *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("orders.created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("orders.created_at < ?", to)
	}
	return query
}
