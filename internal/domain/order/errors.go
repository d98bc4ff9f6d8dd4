package order

import (
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.ErrInvalidOrderStatus

	// ErrCartEmpty 购物车为空,无法结账
	ErrCartEmpty = apperrors.ErrCartEmpty

	// ErrPaymentFailed 支付被拒绝
	ErrPaymentFailed = apperrors.ErrPaymentFailed

	// ErrInsufficientStock 库存不足(Details携带逐行明细)
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrLockTimeout 库存行锁等待超时
	ErrLockTimeout = apperrors.ErrLockTimeout

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)
