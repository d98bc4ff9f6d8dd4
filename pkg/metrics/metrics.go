// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值，如结账总数、库存不足次数
// - Gauge（仪表盘）：可增可减的瞬时值，如处理中的结账数
// - Histogram（直方图）：观测值的分布，自动计算分位数（P50、P90、P99）
//
// 命名规范：
// - Counter以_total结尾，Histogram以单位结尾（_seconds）
// - 标签区分维度（如result=confirmed/cart_empty/insufficient_stock/payment_failed），
//   避免高基数标签（不要用user_id、book_id做标签）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 业务代码中：
//	metrics.CheckoutTotal.With(prometheus.Labels{"result": "confirmed"}).Inc()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/orders/checkout）、status（200/409）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 结账业务指标

	// CheckoutTotal 结账总数（Counter）
	// 标签：result（confirmed/cart_empty/insufficient_stock/payment_failed/lock_timeout/error）
	CheckoutTotal *prometheus.CounterVec

	// CheckoutDuration 结账事务耗时（Histogram）
	// 包含行锁等待时间，锁竞争会直接体现在高分位上
	CheckoutDuration prometheus.Histogram

	// CheckoutInProgress 正在处理的结账数（Gauge）
	CheckoutInProgress prometheus.Gauge

	// StockShortagesTotal 结账时命中库存不足的行数（Counter）
	StockShortagesTotal prometheus.Counter

	// 熔断器指标（支付网关）

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，注册所有指标到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 结账业务指标
	CheckoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_total",
			Help: "结账总数",
		},
		[]string{"result"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_duration_seconds",
			Help: "结账事务耗时（秒），含行锁等待",
			// 结账含锁等待，桶上限要覆盖lock_timeout配置
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	CheckoutInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "checkout_in_progress",
			Help: "正在处理的结账数",
		},
	)

	StockShortagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_stock_shortages_total",
			Help: "结账时命中库存不足的行数",
		},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// ObserveCheckout 记录一次结账结果（便捷函数）
func ObserveCheckout(result string, seconds float64) {
	if !initialized {
		return
	}
	CheckoutTotal.With(prometheus.Labels{"result": result}).Inc()
	CheckoutDuration.Observe(seconds)
}
