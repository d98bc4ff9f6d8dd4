package wishlist

import (
	"time"
)

// Item 心愿单条目
// 设计说明:(user_id, book_id)唯一,重复添加报错而非幂等
type Item struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
}

// NewItem 创建心愿单条目
func NewItem(userID, bookID uint) *Item {
	return &Item{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	}
}
