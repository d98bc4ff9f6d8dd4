package wishlist

import (
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// 心愿单领域错误定义
var (
	// ErrItemNotFound 心愿单条目不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "心愿单条目不存在")

	// ErrDuplicateItem 图书已在心愿单中
	ErrDuplicateItem = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书已在心愿单中")
)
