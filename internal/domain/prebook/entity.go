package prebook

import (
	"time"
)

// PreBookStatus 预订状态
type PreBookStatus int

const (
	PreBookStatusWaiting   PreBookStatus = 1 // 等待到货
	PreBookStatusNotified  PreBookStatus = 2 // 已通知(补货0→正数时批量流转)
	PreBookStatusCancelled PreBookStatus = 3 // 已取消
)

// String 实现Stringer接口
func (s PreBookStatus) String() string {
	switch s {
	case PreBookStatusWaiting:
		return "等待到货"
	case PreBookStatusNotified:
		return "已通知"
	case PreBookStatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// PreBook 缺货预订实体(聚合根)
// 设计说明:
// 1. 只有库存为0的图书可以预订
// 2. 每个用户对每本书最多一条waiting状态的预订
// 3. 补货(0→正数)时所有waiting预订流转为notified,并发送到货通知事件
type PreBook struct {
	ID         uint
	UserID     uint
	BookID     uint
	Status     PreBookStatus
	NotifiedAt *time.Time // 通知时间(流转为notified时记录)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPreBook 创建预订(工厂方法)
func NewPreBook(userID, bookID uint) *PreBook {
	now := time.Now()
	return &PreBook{
		UserID:    userID,
		BookID:    bookID,
		Status:    PreBookStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Notify 流转为已通知
func (p *PreBook) Notify() error {
	if p.Status != PreBookStatusWaiting {
		return ErrInvalidPreBookStatus
	}
	now := time.Now()
	p.Status = PreBookStatusNotified
	p.NotifiedAt = &now
	p.UpdatedAt = now
	return nil
}

// Cancel 取消预订(仅waiting状态可取消)
func (p *PreBook) Cancel() error {
	if p.Status != PreBookStatusWaiting {
		return ErrInvalidPreBookStatus
	}
	p.Status = PreBookStatusCancelled
	p.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查预订是否属于指定用户
func (p *PreBook) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}
