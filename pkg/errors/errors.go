package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Details是结构化的错误详情（如库存不足的明细列表），可为空
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int         `json:"code"`              // 业务错误码
	Message string      `json:"message"`           // 用户友好的错误提示
	Details interface{} `json:"details,omitempty"` // 结构化错误详情
	Err     error       `json:"-"`                 // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按业务错误码比较
// 说明：WithDetails会复制AppError，复制后errors.Is必须仍然成立
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Code == appErr.Code
}

// WithDetails 附加结构化错误详情，返回新的AppError
// 说明：预定义错误是包级变量，不能原地修改，必须复制后附加
func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Err:     e.Err,
	}
}

// HTTPStatus 业务错误码 → HTTP状态码
// 设计说明：客户端按HTTP状态码做粗粒度分支，按业务Code做细粒度提示
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeCartEmpty:
		return http.StatusUnprocessableEntity
	case ErrCodeInsufficientStock, ErrCodeLockTimeout:
		return http.StatusConflict
	case ErrCodePaymentFailed:
		return http.StatusPaymentRequired
	case ErrCodeDuplicateEntry, ErrCodeEmailDuplicate, ErrCodeISBNDuplicate,
		ErrCodeDuplicateReview, ErrCodeOutOfStock, ErrCodeBookInStock:
		return http.StatusConflict
	case ErrCodeForbidden, ErrCodeNotPurchased:
		return http.StatusForbidden
	}

	switch {
	case e.Code >= 40100 && e.Code < 40200:
		return http.StatusUnauthorized
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40000 && e.Code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeOrderNotFound    = 40403 // 订单不存在
	ErrCodeCartItemNotFound = 40404 // 购物车条目不存在
	ErrCodeReviewNotFound   = 40405 // 评论不存在
	ErrCodeGenreNotFound    = 40406 // 分类不存在
	ErrCodePreBookNotFound  = 40407 // 预订记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock  = 40001 // 库存不足（结账时详情见Details）
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeISBNDuplicate      = 40004 // ISBN已存在
	ErrCodeWeakPassword       = 40005 // 密码强度不足
	ErrCodeOutOfStock         = 40006 // 图书无库存（加入购物车时）
	ErrCodeDuplicateReview    = 40007 // 重复评论
	ErrCodeNotPurchased       = 40008 // 未购买过该图书
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)
	ErrCodeBookInStock        = 40010 // 图书有库存（不允许预订）

	// 结账错误（40200-40299、42200-42299）
	ErrCodePaymentFailed = 40201 // 支付被拒绝
	ErrCodeCartEmpty     = 42201 // 购物车为空

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeLockTimeout   = 40902 // 行锁等待超时
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrUserNotFound     = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound     = New(ErrCodeBookNotFound, "图书不存在")
	ErrOrderNotFound    = New(ErrCodeOrderNotFound, "订单不存在")
	ErrCartItemNotFound = New(ErrCodeCartItemNotFound, "购物车条目不存在")
	ErrReviewNotFound   = New(ErrCodeReviewNotFound, "评论不存在")
	ErrGenreNotFound    = New(ErrCodeGenreNotFound, "分类不存在")
	ErrPreBookNotFound  = New(ErrCodePreBookNotFound, "预订记录不存在")

	// 业务规则
	ErrInsufficientStock  = New(ErrCodeInsufficientStock, "库存不足")
	ErrInvalidOrderStatus = New(ErrCodeInvalidOrderStatus, "订单状态不允许此操作")
	ErrEmailDuplicate     = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrISBNDuplicate      = New(ErrCodeISBNDuplicate, "ISBN号已存在")
	ErrWeakPassword       = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")
	ErrOutOfStock         = New(ErrCodeOutOfStock, "图书暂无库存")
	ErrDuplicateReview    = New(ErrCodeDuplicateReview, "已评论过该图书")
	ErrNotPurchased       = New(ErrCodeNotPurchased, "仅限已购买用户操作")
	ErrDuplicateEntry     = New(ErrCodeDuplicateEntry, "记录已存在")
	ErrBookInStock        = New(ErrCodeBookInStock, "图书有库存，无需预订")

	// 结账
	ErrPaymentFailed = New(ErrCodePaymentFailed, "支付被拒绝")
	ErrCartEmpty     = New(ErrCodeCartEmpty, "购物车为空")
	ErrLockTimeout   = New(ErrCodeLockTimeout, "库存行锁等待超时，请稍后重试")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
