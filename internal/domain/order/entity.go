package order

import (
	"time"
)

// OrderStatus 订单状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 结账在单个事务内完成扣款,订单落库时即为"已确认",没有"待支付"中间态
type OrderStatus int

const (
	OrderStatusConfirmed OrderStatus = 1 // 已确认(扣款成功)
	OrderStatusShipped   OrderStatus = 2 // 已发货
	OrderStatusCompleted OrderStatus = 3 // 已完成
	OrderStatusCancelled OrderStatus = 4 // 已取消
)

// String 实现Stringer接口(方便日志输出)
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusConfirmed:
		return "已确认"
	case OrderStatusShipped:
		return "已发货"
	case OrderStatusCompleted:
		return "已完成"
	case OrderStatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是子实体
// 2. Total冗余存储下单时刻的总金额,改价不影响历史订单
type Order struct {
	ID        uint
	OrderNo   string      // 订单号(业务主键,全局唯一)
	UserID    uint        // 买家用户ID
	Total     int64       // 订单总金额(分),冗余字段
	Status    OrderStatus // 订单状态
	Items     []OrderItem // 订单明细(聚合内的子实体)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. Title/Author/UnitPrice是下单时刻的快照,后续改价、改名、下架
//    都不影响历史订单的展示和金额
type OrderItem struct {
	ID        uint
	OrderID   uint   // 所属订单ID
	BookID    uint   // 图书ID
	Title     string // 下单时的书名快照
	Author    string // 下单时的作者快照
	Quantity  int    // 购买数量
	UnitPrice int64  // 下单时的单价(分)
}

// Subtotal 明细行小计(分)
func (i *OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// NewOrder 创建新订单(工厂方法)
// 结账成功时调用,初始状态为已确认
func NewOrder(orderNo string, userID uint, items []OrderItem, total int64) *Order {
	now := time.Now()
	return &Order{
		OrderNo:   orderNo,
		UserID:    userID,
		Total:     total,
		Status:    OrderStatusConfirmed,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:   {OrderStatusCompleted},
		OrderStatusCompleted: {}, // 终态
		OrderStatusCancelled: {}, // 终态
	}

	allowedTargets, exists := transitions[o.Status]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Ship 发货(领域行为)
func (o *Order) Ship() error {
	return o.TransitionTo(OrderStatusShipped)
}

// Complete 完成订单(领域行为)
func (o *Order) Complete() error {
	return o.TransitionTo(OrderStatusCompleted)
}

// Cancel 取消订单(领域行为)
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// CalculateTotal 计算订单总金额
// 用于校验Total冗余字段与明细一致
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// ContainsBook 订单中是否包含指定图书(评论的购买校验使用)
func (o *Order) ContainsBook(bookID uint) bool {
	for _, item := range o.Items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}
