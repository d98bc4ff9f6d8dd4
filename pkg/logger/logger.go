// Package logger 提供基于zap的结构化日志
//
// 设计说明：
// 1. 使用zap而非标准库log：结构化字段、级别控制、JSON输出
// 2. 全局Logger通过Init初始化，业务代码直接使用logger.L()
// 3. 开发环境console格式（彩色、易读），生产环境json格式（便于采集）
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger = zap.NewNop()

// Init 初始化全局Logger
//
// 参数：
//   - level: debug | info | warn | error
//   - format: console | json
func Init(level, format string) error {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lv, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("非法的日志级别 %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lv)

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return fmt.Errorf("构建Logger失败: %w", err)
	}

	global = l
	return nil
}

// L 返回全局Logger
// 说明：未调用Init时返回Nop Logger（测试场景下静默）
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲的日志（程序退出前调用）
func Sync() {
	_ = global.Sync()
}
