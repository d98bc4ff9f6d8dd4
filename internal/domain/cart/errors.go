package cart

import (
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartItemNotFound 购物车条目不存在
	ErrCartItemNotFound = apperrors.ErrCartItemNotFound

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrOutOfStock 图书暂无库存,不能加入购物车
	ErrOutOfStock = apperrors.ErrOutOfStock
)
