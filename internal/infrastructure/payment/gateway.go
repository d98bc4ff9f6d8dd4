// Package payment 支付网关实现
//
// MockGateway模拟外部支付服务:正常情况扣款成功,请求带force_payment_failure
// 时拒绝扣款(演练失败路径)。真实网关接入时替换Charge内部实现即可,
// 熔断包装(BreakerGateway)不需要改动。
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookmall/internal/domain/order"
	"github.com/xiebiao/bookmall/internal/infrastructure/config"
	"github.com/xiebiao/bookmall/pkg/circuitbreaker"
	"github.com/xiebiao/bookmall/pkg/logger"
	"github.com/xiebiao/bookmall/pkg/metrics"
)

// MockGateway 模拟支付网关
type MockGateway struct{}

// NewMockGateway 创建模拟支付网关
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Charge 扣款
// forceFail为true时模拟支付被拒绝(返回false,nil,属于业务失败而非网关故障)
func (g *MockGateway) Charge(ctx context.Context, userID uint, amount int64, forceFail bool) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if forceFail {
		return false, nil
	}
	return true, nil
}

// BreakerGateway 带熔断的支付网关包装
// 设计说明:
// 1. 结账事务持有库存行锁期间调用支付,网关故障时必须快速失败,
//    不能拖着行锁等下游超时
// 2. 只有网关错误(err != nil)计入熔断统计,业务拒绝(approved=false)不算故障
// 3. 熔断打开时直接返回ErrOpenState,上层映射为支付失败
type BreakerGateway struct {
	inner   order.PaymentGateway
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerGateway 创建带熔断的支付网关
func NewBreakerGateway(inner order.PaymentGateway, cfg config.PaymentConfig) *BreakerGateway {
	cb := circuitbreaker.NewCircuitBreaker("payment-gateway", circuitbreaker.Config{
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
	})

	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.L().Warn("支付网关熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
		if metrics.CircuitBreakerState != nil {
			metrics.CircuitBreakerState.With(prometheus.Labels{"name": name}).Set(float64(to))
		}
	})

	return &BreakerGateway{inner: inner, breaker: cb}
}

// Charge 扣款(经过熔断器)
func (g *BreakerGateway) Charge(ctx context.Context, userID uint, amount int64, forceFail bool) (bool, error) {
	var approved bool

	start := time.Now()
	err := g.breaker.Execute(func() error {
		var chargeErr error
		approved, chargeErr = g.inner.Charge(ctx, userID, amount, forceFail)
		return chargeErr
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	if metrics.CircuitBreakerRequests != nil {
		metrics.CircuitBreakerRequests.With(prometheus.Labels{
			"name":   "payment-gateway",
			"result": result,
		}).Inc()
	}

	if err != nil {
		logger.L().Warn("支付网关调用失败",
			zap.Uint("user_id", userID),
			zap.Int64("amount", amount),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return false, err
	}

	return approved, nil
}
