package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/prebook"
	"github.com/xiebiao/bookmall/pkg/mq"
)

// =========================================
// 内存假件
// =========================================

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	result := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error { return nil }

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) LockByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

type fakePreBookRepo struct {
	prebooks []*prebook.PreBook
}

func (r *fakePreBookRepo) Create(ctx context.Context, p *prebook.PreBook) error {
	p.ID = uint(len(r.prebooks) + 1)
	r.prebooks = append(r.prebooks, p)
	return nil
}

func (r *fakePreBookRepo) FindByID(ctx context.Context, id uint) (*prebook.PreBook, error) {
	for _, p := range r.prebooks {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, prebook.ErrPreBookNotFound
}

func (r *fakePreBookRepo) ListByUserID(ctx context.Context, userID uint) ([]*prebook.PreBook, error) {
	var result []*prebook.PreBook
	for _, p := range r.prebooks {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePreBookRepo) ListWaitingByBookID(ctx context.Context, bookID uint) ([]*prebook.PreBook, error) {
	var result []*prebook.PreBook
	for _, p := range r.prebooks {
		if p.BookID == bookID && p.Status == prebook.PreBookStatusWaiting {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePreBookRepo) Update(ctx context.Context, p *prebook.PreBook) error { return nil }

// fakeTxManager 透传执行
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []fakeEvent
}

type fakeEvent struct {
	routingKey string
	message    interface{}
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	p.events = append(p.events, fakeEvent{routingKey: routingKey, message: message})
	return nil
}

// =========================================
// 测试用例
// =========================================

func TestSetStock_BackInStockNotifiesWaiting(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "售罄书", Price: 5900, Stock: 0},
	)
	preBookRepo := &fakePreBookRepo{}
	// 两个等待中的预订 + 一个已取消的(不应被通知)
	p1 := prebook.NewPreBook(10, 1)
	p2 := prebook.NewPreBook(20, 1)
	p3 := prebook.NewPreBook(30, 1)
	require.NoError(t, p3.Cancel())
	_ = preBookRepo.Create(context.Background(), p1)
	_ = preBookRepo.Create(context.Background(), p2)
	_ = preBookRepo.Create(context.Background(), p3)

	publisher := &fakePublisher{}
	uc := NewSetStockUseCase(bookRepo, preBookRepo, &fakeTxManager{}, publisher)

	resp, err := uc.Execute(context.Background(), SetStockRequest{BookID: 1, Stock: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Stock)
	assert.Equal(t, 2, resp.NotifiedUsers)
	assert.Equal(t, 5, bookRepo.books[1].Stock)

	// waiting预订流转为已通知,取消的不动
	assert.Equal(t, prebook.PreBookStatusNotified, p1.Status)
	assert.NotNil(t, p1.NotifiedAt)
	assert.Equal(t, prebook.PreBookStatusNotified, p2.Status)
	assert.Equal(t, prebook.PreBookStatusCancelled, p3.Status)

	// 每个用户一条到货通知事件
	require.Len(t, publisher.events, 2)
	for _, e := range publisher.events {
		assert.Equal(t, "book.back_in_stock", e.routingKey)
		event, ok := e.message.(mq.BackInStockEvent)
		require.True(t, ok)
		assert.Equal(t, uint(1), event.BookID)
		assert.Equal(t, "售罄书", event.BookTitle)
	}
}

func TestSetStock_PositiveToPositiveNoNotify(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "在售书", Price: 5900, Stock: 3},
	)
	preBookRepo := &fakePreBookRepo{}
	p := prebook.NewPreBook(10, 1)
	_ = preBookRepo.Create(context.Background(), p)

	publisher := &fakePublisher{}
	uc := NewSetStockUseCase(bookRepo, preBookRepo, &fakeTxManager{}, publisher)

	resp, err := uc.Execute(context.Background(), SetStockRequest{BookID: 1, Stock: 10})
	require.NoError(t, err)

	// 库存从正数调整到正数不算到货,不通知
	assert.Equal(t, 0, resp.NotifiedUsers)
	assert.Equal(t, prebook.PreBookStatusWaiting, p.Status)
	assert.Empty(t, publisher.events)
}

func TestSetStock_ToZeroNoNotify(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "下架书", Price: 5900, Stock: 0},
	)
	preBookRepo := &fakePreBookRepo{}
	p := prebook.NewPreBook(10, 1)
	_ = preBookRepo.Create(context.Background(), p)

	uc := NewSetStockUseCase(bookRepo, preBookRepo, &fakeTxManager{}, &fakePublisher{})

	resp, err := uc.Execute(context.Background(), SetStockRequest{BookID: 1, Stock: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.NotifiedUsers)
	assert.Equal(t, prebook.PreBookStatusWaiting, p.Status)
}

func TestSetStock_NegativeStockRejected(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 1, Title: "图书", Price: 5900, Stock: 5},
	)
	uc := NewSetStockUseCase(bookRepo, &fakePreBookRepo{}, &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), SetStockRequest{BookID: 1, Stock: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrInvalidStock)
	// 失败不落库
	assert.Equal(t, 5, bookRepo.books[1].Stock)
}

func TestSetStock_BookNotFound(t *testing.T) {
	uc := NewSetStockUseCase(newFakeBookRepo(), &fakePreBookRepo{}, &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), SetStockRequest{BookID: 99, Stock: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
