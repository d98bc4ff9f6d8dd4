package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

// TestCircuitBreaker_ClosedState 测试关闭状态（正常）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("payment-gateway", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// 执行成功请求
	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（熔断）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := NewCircuitBreaker("payment-gateway", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// 连续5次支付失败触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("payment service unavailable")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断后的请求应该快速失败，不调用支付网关
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态探测恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("payment-gateway", Config{
		MaxRequests: 2,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond, // 缩短熔断时间方便测试
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	// 触发熔断
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("payment service unavailable")
		})
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 等待熔断超时，进入半开状态
	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为HALF_OPEN，实际%s", cb.State())
	}

	// 半开状态下探测成功，恢复关闭状态
	err := cb.Execute(func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("期望探测成功，实际失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailure 测试半开状态探测失败转回熔断
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("payment-gateway", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("payment service unavailable")
		})
	}

	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为HALF_OPEN，实际%s", cb.State())
	}

	// 探测失败，立即转回打开状态
	_ = cb.Execute(func() error {
		return errors.New("still down")
	})
	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := NewCircuitBreaker("payment-gateway", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	var gotFrom, gotTo State
	var gotName string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		gotName = name
		gotFrom = from
		gotTo = to
	})

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error {
			return errors.New("payment service unavailable")
		})
	}

	if gotName != "payment-gateway" {
		t.Errorf("期望回调名称payment-gateway，实际%s", gotName)
	}
	if gotFrom != StateClosed || gotTo != StateOpen {
		t.Errorf("期望状态变化CLOSED→OPEN，实际%s→%s", gotFrom, gotTo)
	}
}

// TestCounts_FailureRate 测试失败率计算
func TestCounts_FailureRate(t *testing.T) {
	c := Counts{Requests: 10, TotalFailures: 3}
	if rate := c.FailureRate(); rate != 0.3 {
		t.Errorf("期望失败率0.3，实际%f", rate)
	}

	empty := Counts{}
	if rate := empty.FailureRate(); rate != 0 {
		t.Errorf("期望空统计失败率0，实际%f", rate)
	}
}
