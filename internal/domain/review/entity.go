package review

import (
	"time"
)

// ReviewStatus 评论状态(审核流)
type ReviewStatus int

const (
	ReviewStatusPending  ReviewStatus = 1 // 待审核
	ReviewStatusApproved ReviewStatus = 2 // 已通过(对外可见)
	ReviewStatusRejected ReviewStatus = 3 // 已驳回
)

// String 实现Stringer接口
func (s ReviewStatus) String() string {
	switch s {
	case ReviewStatusPending:
		return "待审核"
	case ReviewStatusApproved:
		return "已通过"
	case ReviewStatusRejected:
		return "已驳回"
	default:
		return "未知状态"
	}
}

// Review 评论实体(聚合根)
// 设计说明:
// 1. 每个用户对每本书最多一条评论((user_id, book_id)唯一)
// 2. VerifiedPurchase在创建时根据订单记录判定并固化,后续不变
// 3. 新评论进入待审核状态,审核通过后对外可见
type Review struct {
	ID               uint
	UserID           uint
	BookID           uint
	Rating           int    // 评分1-5
	Comment          string // 评论内容
	VerifiedPurchase bool   // 是否已购用户(创建时固化)
	Status           ReviewStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewReview 创建评论(工厂方法)
func NewReview(userID, bookID uint, rating int, comment string, verifiedPurchase bool) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now()
	return &Review{
		UserID:           userID,
		BookID:           bookID,
		Rating:           rating,
		Comment:          comment,
		VerifiedPurchase: verifiedPurchase,
		Status:           ReviewStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Approve 审核通过(管理端)
func (r *Review) Approve() error {
	if r.Status != ReviewStatusPending {
		return ErrInvalidReviewStatus
	}
	r.Status = ReviewStatusApproved
	r.UpdatedAt = time.Now()
	return nil
}

// Reject 审核驳回(管理端)
func (r *Review) Reject() error {
	if r.Status != ReviewStatusPending {
		return ErrInvalidReviewStatus
	}
	r.Status = ReviewStatusRejected
	r.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查评论是否属于指定用户
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
