package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. ISBN作为业务唯一标识(数据库层保证唯一性)
// 4. Stock是结账事务的争用点,修改必须走行锁(见Repository.LockByIDs)
type Book struct {
	ID          uint
	ISBN        string // ISBN号(国际标准书号)
	Title       string // 书名
	Author      string // 作者
	GenreID     uint   // 分类ID(关联Genre表)
	Price       int64  // 价格(单位:分,1元=100分)
	Stock       int    // 库存数量
	CoverURL    string // 封面图片URL
	Description string // 图书描述
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Genre 图书分类实体
type Genre struct {
	ID          uint
	Name        string // 分类名称(唯一)
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(isbn, title, author string, genreID uint, price int64, stock int, coverURL, description string) *Book {
	now := time.Now()
	return &Book{
		ISBN:        isbn,
		Title:       title,
		Author:      author,
		GenreID:     genreID,
		Price:       price,
		Stock:       stock,
		CoverURL:    coverURL,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewGenre 创建新分类
func NewGenre(name, description string) *Genre {
	now := time.Now()
	return &Genre{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格必须>0
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// SetStock 设置库存为指定值(补货/盘点)
// 业务规则:库存不能为负数
func (b *Book) SetStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(结账时使用,调用方必须已持有行锁)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// InStock 是否有库存
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// UpdateInfo 更新图书基本信息(空字段不修改)
func (b *Book) UpdateInfo(title, author, description string, genreID uint) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if description != "" {
		b.Description = description
	}
	if genreID != 0 {
		b.GenreID = genreID
	}
	b.UpdatedAt = time.Now()
}
