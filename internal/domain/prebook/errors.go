package prebook

import (
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// 预订领域错误定义
var (
	// ErrPreBookNotFound 预订记录不存在
	ErrPreBookNotFound = apperrors.ErrPreBookNotFound

	// ErrBookInStock 图书有库存,无需预订
	ErrBookInStock = apperrors.ErrBookInStock

	// ErrDuplicatePreBook 已有等待中的预订
	ErrDuplicatePreBook = apperrors.New(apperrors.ErrCodeDuplicateEntry, "已有等待中的预订")

	// ErrInvalidPreBookStatus 预订状态不允许此操作
	ErrInvalidPreBookStatus = apperrors.New(apperrors.ErrCodeBusinessError, "预订状态不允许此操作")
)
