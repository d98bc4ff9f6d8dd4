package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookmall/pkg/logger"
	"github.com/xiebiao/bookmall/pkg/metrics"
	"github.com/xiebiao/bookmall/pkg/tracing"
)

// AccessLog 访问日志中间件(zap结构化日志)
// 说明:path取路由模板(/api/v1/books/:id)而非实际URL,避免日志与指标高基数
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		logger.L().Info("http请求",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("trace_id", tracing.ExtractTraceID(c.Request.Context())),
		)
	}
}

// Metrics HTTP指标中间件(Prometheus)
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
			defer metrics.HTTPRequestsInProgress.Dec()
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		if metrics.HTTPRequestsTotal != nil {
			metrics.HTTPRequestsTotal.With(prometheus.Labels{
				"method": c.Request.Method,
				"path":   path,
				"status": strconv.Itoa(c.Writer.Status()),
			}).Inc()
		}
		if metrics.HTTPRequestDuration != nil {
			metrics.HTTPRequestDuration.With(prometheus.Labels{
				"method": c.Request.Method,
				"path":   path,
			}).Observe(time.Since(start).Seconds())
		}
	}
}

// Recovery panic恢复中间件(记录堆栈后返回500)
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.L().Error("panic恢复",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		c.AbortWithStatusJSON(500, gin.H{
			"code":    50000,
			"message": "服务器内部错误",
		})
	})
}
