package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/cart"
	"github.com/xiebiao/bookmall/internal/domain/order"
	"github.com/xiebiao/bookmall/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
	"github.com/xiebiao/bookmall/pkg/logger"
	"github.com/xiebiao/bookmall/pkg/metrics"
	"github.com/xiebiao/bookmall/pkg/mq"
	"github.com/xiebiao/bookmall/pkg/tracing"
)

// TxManager 事务管理接口(由infrastructure/persistence/mysql实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事件发布接口(订单确认事件,可为nil)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// CheckoutUseCase 结账用例
// 这是整个项目最核心的用例:单个数据库事务内完成
// 校验、扣款、落单、扣库存、清空购物车,防止超卖
type CheckoutUseCase struct {
	cartRepo    cart.Repository
	bookRepo    book.Repository
	orderRepo   order.Repository
	gateway     order.PaymentGateway
	txManager   TxManager
	publisher   EventPublisher // 可为nil(MQ未启用)
	lockTimeout time.Duration
}

// NewCheckoutUseCase 创建结账用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	gateway order.PaymentGateway,
	txManager TxManager,
	publisher EventPublisher,
	lockTimeout time.Duration,
) *CheckoutUseCase {
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &CheckoutUseCase{
		cartRepo:    cartRepo,
		bookRepo:    bookRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		txManager:   txManager,
		publisher:   publisher,
		lockTimeout: lockTimeout,
	}
}

// CheckoutRequest 结账请求DTO
type CheckoutRequest struct {
	UserID              uint // 买家用户ID(从JWT中提取)
	ForcePaymentFailure bool // 演练支付失败路径(透传给支付网关)
}

// CheckoutResponse 结账响应DTO
type CheckoutResponse struct {
	OrderID   uint               `json:"order_id"`
	OrderNo   string             `json:"order_no"`
	Total     int64              `json:"total"`
	TotalYuan string             `json:"total_yuan"`
	Status    string             `json:"status"`
	Items     []CheckoutItemResp `json:"items"`
	CreatedAt string             `json:"created_at"`
}

// CheckoutItemResp 结账明细响应
type CheckoutItemResp struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Execute 执行结账
//
// 核心问题:库存超卖与死锁
// 场景:同一本书库存10本,100人同时结账;或两个购物车包含相同的两本书
//
// 防超卖:悲观锁
//  1. SELECT ... FOR UPDATE锁定购物车涉及的全部图书行
//  2. 持锁校验每行库存(全有或全无:任何一行不足则整单失败)
//  3. 扣款、落单、扣库存、清空购物车
//  4. COMMIT释放锁
//
// 防死锁:全局锁序
//
//	图书ID升序排列后一条IN查询加锁,任意两个事务的加锁顺序一致,
//	不会出现"A持有1等2,B持有2等1"的环路
//
// 失败路径(全部回滚,购物车保留):
//   - 购物车为空 → ErrCartEmpty(422)
//   - 任一行库存不足 → ErrInsufficientStock + 逐行明细(409)
//   - 支付被拒/网关故障/熔断打开 → ErrPaymentFailed(402)
//   - 行锁等待超时 → ErrLockTimeout(409)
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "checkout")
	defer span.End()

	if metrics.CheckoutInProgress != nil {
		metrics.CheckoutInProgress.Inc()
		defer metrics.CheckoutInProgress.Dec()
	}

	start := time.Now()
	resp, err := uc.execute(ctx, req)
	metrics.ObserveCheckout(checkoutResult(err), time.Since(start).Seconds())

	return resp, err
}

func (uc *CheckoutUseCase) execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	// 限制整体锁等待时间:高竞争时快速失败让用户重试,
	// 好过大量请求排队拖垮连接池
	ctx, cancel := context.WithTimeout(ctx, uc.lockTimeout)
	defer cancel()

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:加载购物车
		// ========================================
		c, err := uc.cartRepo.GetWithItems(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return order.ErrCartEmpty
		}

		// ========================================
		// 步骤2:确定锁集并升序排序(全局锁序,防死锁)
		// ========================================
		ids := c.BookIDs()
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		// ========================================
		// 步骤3:一条SELECT FOR UPDATE锁定全部图书行
		// ========================================
		lockCtx, lockSpan := tracing.StartSpan(txCtx, "checkout.lock_books")
		books, err := uc.bookRepo.LockByIDs(lockCtx, ids)
		lockSpan.End()
		if err != nil {
			return err
		}

		bookMap := make(map[uint]*book.Book, len(books))
		for _, b := range books {
			bookMap[b.ID] = b
		}

		// ========================================
		// 步骤4:持锁校验库存(全有或全无)
		// ========================================
		// 必须在锁定后校验,否则并发扣减导致超卖;
		// 先收集全部不足行再失败,客户端一次拿到完整明细
		var shortages []order.StockShortage
		for _, item := range c.Items {
			b := bookMap[item.BookID]
			if b.Stock < item.Quantity {
				shortages = append(shortages, order.StockShortage{
					BookID:    b.ID,
					Title:     b.Title,
					Requested: item.Quantity,
					Available: b.Stock,
				})
			}
		}
		if len(shortages) > 0 {
			if metrics.StockShortagesTotal != nil {
				metrics.StockShortagesTotal.Add(float64(len(shortages)))
			}
			return order.ErrInsufficientStock.WithDetails(shortages)
		}

		// ========================================
		// 步骤5:按锁定时的价格计算总额(价格快照,防改价攻击)
		// ========================================
		var total int64
		orderItems := make([]order.OrderItem, len(c.Items))
		for i, item := range c.Items {
			b := bookMap[item.BookID]
			orderItems[i] = order.OrderItem{
				BookID:    b.ID,
				Title:     b.Title,
				Author:    b.Author,
				Quantity:  item.Quantity,
				UnitPrice: b.Price,
			}
			total += b.Price * int64(item.Quantity)
		}

		// ========================================
		// 步骤6:扣款(整单一次,网关故障时熔断快速失败)
		// ========================================
		chargeCtx, chargeSpan := tracing.StartSpan(txCtx, "checkout.charge")
		approved, err := uc.gateway.Charge(chargeCtx, req.UserID, total, req.ForcePaymentFailure)
		chargeSpan.End()
		if err != nil {
			// 网关错误(含熔断打开)对客户端统一表现为支付失败,
			// 底层原因记录到日志
			if errors.Is(err, circuitbreaker.ErrOpenState) {
				logger.L().Warn("支付网关熔断中,结账快速失败", zap.Uint("user_id", req.UserID))
			}
			return &apperrors.AppError{
				Code:    apperrors.ErrCodePaymentFailed,
				Message: "支付被拒绝",
				Err:     err,
			}
		}
		if !approved {
			return order.ErrPaymentFailed
		}

		// ========================================
		// 步骤7:落单+扣库存
		// ========================================
		orderNo := order.GenerateOrderNo()
		newOrder := order.NewOrder(orderNo, req.UserID, orderItems, total)
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// stock + delta >= 0守卫是防超卖的最后一道防线,
		// 持锁校验已通过,这里失败说明出现了绕过行锁的写入
		for _, item := range c.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		// ========================================
		// 步骤8:清空购物车(同一事务,失败则整单回滚)
		// ========================================
		if err := uc.cartRepo.ClearItems(txCtx, c.ID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})

	if err != nil {
		// 事务层面的锁等待超时统一映射
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrLockTimeout
		}
		return nil, err
	}

	logger.L().Info("结账成功",
		zap.Uint("user_id", req.UserID),
		zap.String("order_no", result.OrderNo),
		zap.Int64("total", result.Total),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)))

	// 事务提交后发布订单确认事件(失败只记日志,不影响订单)
	if uc.publisher != nil {
		event := mq.OrderConfirmedEvent{
			OrderID: result.ID,
			OrderNo: result.OrderNo,
			UserID:  result.UserID,
			Total:   result.Total,
		}
		if err := uc.publisher.Publish(context.WithoutCancel(ctx), "order.confirmed", event); err != nil {
			logger.L().Warn("发布订单确认事件失败",
				zap.String("order_no", result.OrderNo),
				zap.Error(err))
		}
	}

	return toCheckoutResponse(result), nil
}

// checkoutResult 结账结果 → 监控标签
func checkoutResult(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, order.ErrCartEmpty):
		return "cart_empty"
	case errors.Is(err, order.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, order.ErrPaymentFailed):
		return "payment_failed"
	case errors.Is(err, order.ErrLockTimeout):
		return "lock_timeout"
	default:
		return "error"
	}
}

// toCheckoutResponse 领域实体 → 响应DTO
func toCheckoutResponse(o *order.Order) *CheckoutResponse {
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

	return &CheckoutResponse{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		Total:     o.Total,
		TotalYuan: formatPrice(o.Total),
		Status:    o.Status.String(),
		Items:     items,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPrice 格式化价格(分→元)
// 使用decimal精确转换,避免float64在大金额上的精度损失
func formatPrice(priceFen int64) string {
	return decimal.NewFromInt(priceFen).Div(decimal.NewFromInt(100)).StringFixed(2)
}
