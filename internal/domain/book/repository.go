package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindByIDs 批量查找图书(不加锁,用于展示场景)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表(支持关键词搜索、分类筛选、排序)
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询单本图书(SELECT FOR UPDATE)
	// 用于管理端补货,与结账事务竞争同一把行锁
	LockByID(ctx context.Context, id uint) (*Book, error)

	// LockByIDs 悲观锁批量查询图书(结账核心)
	// 约定:
	// 1. ids必须已按升序排列,所有结账事务以相同顺序加锁,避免死锁
	// 2. 单条SELECT ... WHERE id IN (...) ORDER BY id FOR UPDATE完成加锁
	// 3. 返回顺序与ids一致;缺失的ID返回ErrBookNotFound
	LockByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// SQL带 stock + delta >= 0 守卫,不足则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// GenreRepository 分类仓储接口
type GenreRepository interface {
	// Create 创建分类
	Create(ctx context.Context, genre *Genre) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Genre, error)

	// FindByName 根据名称查找分类
	FindByName(ctx context.Context, name string) (*Genre, error)

	// List 查询全部分类
	List(ctx context.Context) ([]*Genre, error)

	// Update 更新分类
	Update(ctx context.Context, genre *Genre) error

	// Delete 删除分类
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、作者)
	GenreID  uint   // 分类筛选(0表示不筛选)
	InStock  bool   // 只看有库存
	SortBy   string // 排序字段(price_asc, price_desc, created_at_desc)
}
