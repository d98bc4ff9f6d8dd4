package cart

import (
	"time"
)

// Cart 购物车实体(聚合根)
// 设计说明:
// 1. 每个用户恰好一个购物车,首次访问时懒创建
// 2. CartItem按(CartID, BookID)唯一,同一本书只有一行,重复加购合并数量
// 3. 购物车只存BookID和数量,价格在结账时以当时的图书价格为准
type Cart struct {
	ID        uint
	UserID    uint
	Items     []CartItem // 购物车条目(聚合内的子实体)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车条目
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int // 数量,必须>0(数量归零即删除条目)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart 创建购物车(工厂方法)
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 查找指定图书的条目
func (c *Cart) FindItem(bookID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return &c.Items[i]
		}
	}
	return nil
}

// TotalQuantity 购物车内商品总件数
func (c *Cart) TotalQuantity() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// BookIDs 购物车内的图书ID列表(按条目顺序)
func (c *Cart) BookIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.BookID)
	}
	return ids
}
