package order

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/order"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// OrderQueryUseCase 订单查询用例(用户端+管理端)
type OrderQueryUseCase struct {
	orderRepo order.Repository
}

// NewOrderQueryUseCase 创建订单查询用例
func NewOrderQueryUseCase(orderRepo order.Repository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo}
}

// OrderResponse 订单响应DTO
type OrderResponse struct {
	OrderID   uint               `json:"order_id"`
	OrderNo   string             `json:"order_no"`
	UserID    uint               `json:"user_id"`
	Total     int64              `json:"total"`
	TotalYuan string             `json:"total_yuan"`
	Status    string             `json:"status"`
	Items     []CheckoutItemResp `json:"items"`
	CreatedAt string             `json:"created_at"`
}

// ListByUser 查询用户自己的订单列表
func (uc *OrderQueryUseCase) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*OrderResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toOrderResponses(orders), total, nil
}

// Get 查询订单详情
// 权限规则:普通用户只能查看自己的订单,管理员可以查看任意订单
func (uc *OrderQueryUseCase) Get(ctx context.Context, orderID, userID uint, isAdmin bool) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !o.IsOwnedBy(userID) {
		// 返回404而非403,不向用户泄露他人订单的存在
		return nil, order.ErrOrderNotFound
	}

	return toOrderResponse(o), nil
}

// ListAll 查询全部订单(管理端)
func (uc *OrderQueryUseCase) ListAll(ctx context.Context, page, pageSize int) ([]*OrderResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	orders, total, err := uc.orderRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toOrderResponses(orders), total, nil
}

// UpdateStatus 更新订单状态(管理端,走状态机校验)
func (uc *OrderQueryUseCase) UpdateStatus(ctx context.Context, orderID uint, action string) (*OrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "ship":
		err = o.Ship()
	case "complete":
		err = o.Complete()
	case "cancel":
		err = o.Cancel()
	default:
		err = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的操作: "+action)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// =========================================
// 辅助函数
// =========================================

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]CheckoutItemResp, len(o.Items))
	for i, item := range o.Items {
		items[i] = CheckoutItemResp{
			BookID:    item.BookID,
			Title:     item.Title,
			Author:    item.Author,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}

	return &OrderResponse{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total,
		TotalYuan: formatPrice(o.Total),
		Status:    o.Status.String(),
		Items:     items,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toOrderResponses(orders []*order.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = toOrderResponse(o)
	}
	return result
}
