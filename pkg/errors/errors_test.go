package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

// TestAppError_HTTPStatus 测试业务错误码到HTTP状态码的映射
func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"购物车为空→422", ErrCartEmpty, http.StatusUnprocessableEntity},
		{"库存不足→409", ErrInsufficientStock, http.StatusConflict},
		{"行锁超时→409", ErrLockTimeout, http.StatusConflict},
		{"支付被拒→402", ErrPaymentFailed, http.StatusPaymentRequired},
		{"重复评论→409", ErrDuplicateReview, http.StatusConflict},
		{"未购买→403", ErrNotPurchased, http.StatusForbidden},
		{"无权限→403", ErrForbidden, http.StatusForbidden},
		{"未登录→401", ErrUnauthorized, http.StatusUnauthorized},
		{"Token过期→401", ErrTokenExpired, http.StatusUnauthorized},
		{"图书不存在→404", ErrBookNotFound, http.StatusNotFound},
		{"参数错误→400", ErrInvalidParams, http.StatusBadRequest},
		{"内部错误→500", ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, 期望 %d", got, tt.want)
			}
		})
	}
}

// TestAppError_WithDetails 测试附加详情不修改预定义错误
func TestAppError_WithDetails(t *testing.T) {
	details := []map[string]interface{}{
		{"book_id": 1, "requested": 3, "available": 1},
	}

	err := ErrInsufficientStock.WithDetails(details)

	if err == ErrInsufficientStock {
		t.Fatal("WithDetails应返回新的AppError，不能原地修改预定义错误")
	}
	if ErrInsufficientStock.Details != nil {
		t.Error("预定义错误的Details被污染")
	}
	if err.Details == nil {
		t.Error("附加的Details丢失")
	}
	if err.Code != ErrCodeInsufficientStock {
		t.Errorf("错误码变化: %d", err.Code)
	}
}

// TestAppError_Is 测试复制后errors.Is仍按错误码匹配
func TestAppError_Is(t *testing.T) {
	withDetails := ErrInsufficientStock.WithDetails("x")
	if !stderrors.Is(withDetails, ErrInsufficientStock) {
		t.Error("WithDetails复制后errors.Is应仍成立")
	}

	wrapped := fmt.Errorf("结账失败: %w", ErrCartEmpty)
	if !stderrors.Is(wrapped, ErrCartEmpty) {
		t.Error("fmt.Errorf包装后errors.Is应仍成立")
	}

	if stderrors.Is(ErrCartEmpty, ErrInsufficientStock) {
		t.Error("不同错误码不应匹配")
	}
}

// TestWrap 测试系统错误包装
func TestWrap(t *testing.T) {
	dbErr := stderrors.New("connection refused")
	err := Wrap(dbErr, "数据库错误")

	if err.Code != ErrCodeInternal {
		t.Errorf("期望错误码%d，实际%d", ErrCodeInternal, err.Code)
	}
	if !stderrors.Is(err, dbErr) {
		t.Error("Unwrap应能追溯到底层错误")
	}
}

// TestGetAppError 测试从普通error提取AppError
func TestGetAppError(t *testing.T) {
	// AppError直接返回
	appErr := GetAppError(ErrBookNotFound)
	if appErr.Code != ErrCodeBookNotFound {
		t.Errorf("期望错误码%d，实际%d", ErrCodeBookNotFound, appErr.Code)
	}

	// 包装过的AppError也能提取
	wrapped := fmt.Errorf("查询失败: %w", ErrBookNotFound)
	appErr = GetAppError(wrapped)
	if appErr.Code != ErrCodeBookNotFound {
		t.Errorf("期望错误码%d，实际%d", ErrCodeBookNotFound, appErr.Code)
	}

	// 普通error转为内部错误
	appErr = GetAppError(stderrors.New("boom"))
	if appErr.Code != ErrCodeInternal {
		t.Errorf("期望错误码%d，实际%d", ErrCodeInternal, appErr.Code)
	}
}
