package review

import (
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// 评论领域错误定义
var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.ErrReviewNotFound

	// ErrDuplicateReview 重复评论(每人每书一条)
	ErrDuplicateReview = apperrors.ErrDuplicateReview

	// ErrNotPurchased 未购买过该图书,不能评论
	ErrNotPurchased = apperrors.ErrNotPurchased

	// ErrInvalidRating 评分必须在1-5之间
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")

	// ErrInvalidReviewStatus 评论状态不允许此操作
	ErrInvalidReviewStatus = apperrors.New(apperrors.ErrCodeBusinessError, "评论状态不允许此操作")
)
