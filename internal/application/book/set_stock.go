package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/prebook"
	"github.com/xiebiao/bookmall/pkg/logger"
	"github.com/xiebiao/bookmall/pkg/mq"
)

// TxManager 事务管理接口(由infrastructure/persistence/mysql实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事件发布接口(到货通知事件,可为nil)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// SetStockUseCase 补货/盘点用例(仅管理员)
// 设计说明:
// 1. 补货与结账争用同一把图书行锁,必须LockByID后修改,
//    否则结账事务持锁校验期间库存被改写会导致超卖
// 2. 库存0→正数时,该书全部waiting预订流转为notified,
//    并在事务提交后逐个发布到货通知事件
type SetStockUseCase struct {
	bookRepo    book.Repository
	preBookRepo prebook.Repository
	txManager   TxManager
	publisher   EventPublisher // 可为nil(MQ未启用)
}

// NewSetStockUseCase 创建补货用例
func NewSetStockUseCase(
	bookRepo book.Repository,
	preBookRepo prebook.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *SetStockUseCase {
	return &SetStockUseCase{
		bookRepo:    bookRepo,
		preBookRepo: preBookRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// SetStockRequest 补货请求DTO
type SetStockRequest struct {
	BookID uint
	Stock  int // 目标库存(覆盖,不累加)
}

// SetStockResponse 补货响应DTO
type SetStockResponse struct {
	BookID        uint `json:"book_id"`
	Stock         int  `json:"stock"`
	NotifiedUsers int  `json:"notified_users"` // 本次触发到货通知的用户数
}

// Execute 执行补货
func (uc *SetStockUseCase) Execute(ctx context.Context, req SetStockRequest) (*SetStockResponse, error) {
	var (
		title    string
		notified []uint // 待通知的用户ID(事务提交后发事件)
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 行锁串行化补货与结账对同一行的修改
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		backInStock := !b.InStock() && req.Stock > 0

		if err := b.SetStock(req.Stock); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}
		title = b.Title

		// 0→正数:等待中的预订批量流转为已通知
		if backInStock {
			waiting, err := uc.preBookRepo.ListWaitingByBookID(txCtx, req.BookID)
			if err != nil {
				return err
			}
			for _, p := range waiting {
				if err := p.Notify(); err != nil {
					return err
				}
				if err := uc.preBookRepo.Update(txCtx, p); err != nil {
					return err
				}
				notified = append(notified, p.UserID)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后发布到货通知(失败只记日志,预订状态已落库)
	if uc.publisher != nil && len(notified) > 0 {
		pubCtx := context.WithoutCancel(ctx)
		for _, userID := range notified {
			event := mq.BackInStockEvent{
				UserID:    userID,
				BookID:    req.BookID,
				BookTitle: title,
			}
			if err := uc.publisher.Publish(pubCtx, "book.back_in_stock", event); err != nil {
				logger.L().Warn("发布到货通知事件失败",
					zap.Uint("user_id", userID),
					zap.Uint("book_id", req.BookID),
					zap.Error(err))
			}
		}
	}

	if len(notified) > 0 {
		logger.L().Info("补货触发到货通知",
			zap.Uint("book_id", req.BookID),
			zap.Int("stock", req.Stock),
			zap.Int("notified_users", len(notified)))
	}

	return &SetStockResponse{
		BookID:        req.BookID,
		Stock:         req.Stock,
		NotifiedUsers: len(notified),
	}, nil
}
