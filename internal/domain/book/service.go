package book

import (
	"context"
	"regexp"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 库存修改不在这里:补货走application层的SetStock用例(需要行锁和到货通知)
type Service interface {
	// PublishBook 发布图书(上架,仅管理员)
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)
	// - 价格必须在1-999999分之间
	// - 库存必须>=0
	// - ISBN不能重复,分类必须存在
	PublishBook(ctx context.Context, isbn, title, author string, genreID uint, price int64, stock int, coverURL, description string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBookInfo 更新图书信息(仅管理员)
	UpdateBookInfo(ctx context.Context, id uint, title, author, description string, genreID uint) error

	// UpdateBookPrice 更新图书价格(仅管理员)
	UpdateBookPrice(ctx context.Context, id uint, newPrice int64) error

	// DeleteBook 删除图书(仅管理员,软删除)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表(公开接口)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// CreateGenre 创建分类(仅管理员)
	CreateGenre(ctx context.Context, name, description string) (*Genre, error)

	// ListGenres 查询全部分类(公开接口)
	ListGenres(ctx context.Context) ([]*Genre, error)
}

// service 领域服务实现
type service struct {
	repo      Repository
	genreRepo GenreRepository
}

// NewService 创建图书领域服务
func NewService(repo Repository, genreRepo GenreRepository) Service {
	return &service{repo: repo, genreRepo: genreRepo}
}

// PublishBook 发布图书
func (s *service) PublishBook(ctx context.Context, isbn, title, author string, genreID uint, price int64, stock int, coverURL, description string) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}

	// 2. 价格范围校验(1分-9999.99元)
	if price < 1 || price > 999999 {
		return nil, ErrInvalidPrice
	}

	// 3. 库存校验
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 4. 分类必须存在
	if _, err := s.genreRepo.FindByID(ctx, genreID); err != nil {
		return nil, err
	}

	// 5. 检查ISBN是否已存在
	existingBook, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existingBook != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 6. 创建并持久化
	book := NewBook(isbn, title, author, genreID, price, stock, coverURL, description)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBookInfo 更新图书信息
func (s *service) UpdateBookInfo(ctx context.Context, id uint, title, author, description string, genreID uint) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if genreID != 0 {
		if _, err := s.genreRepo.FindByID(ctx, genreID); err != nil {
			return err
		}
	}

	book.UpdateInfo(title, author, description, genreID)
	return s.repo.Update(ctx, book)
}

// UpdateBookPrice 更新图书价格
// 说明:改价只影响后续订单,已生成的订单行保留下单时的价格快照
func (s *service) UpdateBookPrice(ctx context.Context, id uint, newPrice int64) error {
	if newPrice < 1 || newPrice > 999999 {
		return ErrInvalidPrice
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := book.UpdatePrice(newPrice); err != nil {
		return err
	}

	return s.repo.Update(ctx, book)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// CreateGenre 创建分类
func (s *service) CreateGenre(ctx context.Context, name, description string) (*Genre, error) {
	if name == "" {
		return nil, ErrInvalidGenreName
	}

	existing, err := s.genreRepo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, ErrGenreDuplicate
	}
	if err != nil && err != ErrGenreNotFound {
		return nil, err
	}

	genre := NewGenre(name, description)
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// ListGenres 查询全部分类
func (s *service) ListGenres(ctx context.Context) ([]*Genre, error) {
	return s.genreRepo.List(ctx)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// isValidISBN 校验ISBN格式
// 支持ISBN-10和ISBN-13,允许分隔符(978-7-115-42802-8)
// 简化实现:只检查位数(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	cleanISBN := re.ReplaceAllString(isbn, "")

	length := len(cleanISBN)
	return length == 10 || length == 13
}
