package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/cart"
	"github.com/xiebiao/bookmall/internal/domain/order"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// =========================================
// 内存假件(不连数据库,验证用例编排逻辑)
// =========================================

type fakeCartRepo struct {
	carts   map[uint]*cart.Cart
	cleared []uint // ClearItems调用记录(cartID)
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart)}
}

func (r *fakeCartRepo) GetOrCreateByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	if c, ok := r.carts[userID]; ok {
		return c, nil
	}
	c := &cart.Cart{ID: userID * 100, UserID: userID}
	r.carts[userID] = c
	return c, nil
}

func (r *fakeCartRepo) GetWithItems(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.GetOrCreateByUserID(ctx, userID)
}

func (r *fakeCartRepo) UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID, bookID uint, quantity int) error {
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	return nil
}

func (r *fakeCartRepo) ClearItems(ctx context.Context, cartID uint) error {
	r.cleared = append(r.cleared, cartID)
	for _, c := range r.carts {
		if c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

type fakeBookRepo struct {
	books     map[uint]*book.Book
	lockedIDs [][]uint // LockByIDs收到的锁集(验证锁序)
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
	return r.LockByIDs(ctx, ids)
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) LockByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	r.lockedIDs = append(r.lockedIDs, append([]uint(nil), ids...))
	result := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		b, ok := r.books[id]
		if !ok {
			return nil, book.ErrBookNotFound
		}
		result = append(result, b)
	}
	return result, nil
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

type fakeOrderRepo struct {
	orders []*order.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = uint(len(r.orders) + 1)
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, page, pageSize int) ([]*order.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) ExistsByUserAndBook(ctx context.Context, userID, bookID uint) (bool, error) {
	return false, nil
}

// fakeGateway 假支付网关
type fakeGateway struct {
	err     error // 网关故障
	charged []int64
}

func (g *fakeGateway) Charge(ctx context.Context, userID uint, amount int64, forceFail bool) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if forceFail {
		return false, nil
	}
	g.charged = append(g.charged, amount)
	return true, nil
}

// fakeTxManager 透传执行(回滚路径的断言只看"没发生的副作用")
// 互斥锁模拟行锁:并发结账时事务串行执行,后来者看到前者已提交的扣减
type fakeTxManager struct {
	mu  sync.Mutex
	err error // 模拟事务层错误(如锁等待超时)
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakePublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	routingKey string
	message    interface{}
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	p.events = append(p.events, publishedEvent{routingKey: routingKey, message: message})
	return nil
}

// =========================================
// 测试辅助
// =========================================

type checkoutFixture struct {
	uc        *CheckoutUseCase
	cartRepo  *fakeCartRepo
	bookRepo  *fakeBookRepo
	orderRepo *fakeOrderRepo
	gateway   *fakeGateway
	txManager *fakeTxManager
	publisher *fakePublisher
}

func newCheckoutFixture(books ...*book.Book) *checkoutFixture {
	f := &checkoutFixture{
		cartRepo:  newFakeCartRepo(),
		bookRepo:  newFakeBookRepo(books...),
		orderRepo: &fakeOrderRepo{},
		gateway:   &fakeGateway{},
		txManager: &fakeTxManager{},
		publisher: &fakePublisher{},
	}
	f.uc = NewCheckoutUseCase(
		f.cartRepo, f.bookRepo, f.orderRepo, f.gateway,
		f.txManager, f.publisher, 0,
	)
	return f
}

// fillCart 填充用户购物车
func (f *checkoutFixture) fillCart(userID uint, items ...cart.CartItem) {
	c, _ := f.cartRepo.GetOrCreateByUserID(context.Background(), userID)
	c.Items = items
}

// =========================================
// 测试用例
// =========================================

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 2, Title: "图书A", Author: "作者A", Price: 5900, Stock: 10},
		&book.Book{ID: 5, Title: "图书B", Author: "作者B", Price: 3000, Stock: 3},
	)
	f.fillCart(1,
		cart.CartItem{BookID: 5, Quantity: 2},
		cart.CartItem{BookID: 2, Quantity: 1},
	)

	resp, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.NoError(t, err, "结账应该成功")

	// 订单落库,金额=5900*1+3000*2
	require.Len(t, f.orderRepo.orders, 1)
	assert.Equal(t, int64(11900), resp.Total)
	assert.Equal(t, "119.00", resp.TotalYuan)
	assert.Equal(t, "已确认", resp.Status)
	assert.NotEmpty(t, resp.OrderNo)

	// 扣款一次,整单金额
	require.Len(t, f.gateway.charged, 1)
	assert.Equal(t, int64(11900), f.gateway.charged[0])

	// 库存扣减
	assert.Equal(t, 9, f.bookRepo.books[2].Stock)
	assert.Equal(t, 1, f.bookRepo.books[5].Stock)

	// 购物车已清空
	assert.Len(t, f.cartRepo.cleared, 1)

	// 订单确认事件已发布
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "order.confirmed", f.publisher.events[0].routingKey)
}

func TestCheckout_LockOrderAscending(t *testing.T) {
	// 购物车条目故意乱序,锁集必须升序(全局锁序防死锁)
	f := newCheckoutFixture(
		&book.Book{ID: 7, Title: "A", Price: 100, Stock: 5},
		&book.Book{ID: 3, Title: "B", Price: 100, Stock: 5},
		&book.Book{ID: 9, Title: "C", Price: 100, Stock: 5},
	)
	f.fillCart(1,
		cart.CartItem{BookID: 9, Quantity: 1},
		cart.CartItem{BookID: 3, Quantity: 1},
		cart.CartItem{BookID: 7, Quantity: 1},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.NoError(t, err)

	require.Len(t, f.bookRepo.lockedIDs, 1)
	assert.Equal(t, []uint{3, 7, 9}, f.bookRepo.lockedIDs[0], "加锁顺序必须是图书ID升序")
}

func TestCheckout_LastUnitContention(t *testing.T) {
	// 两个用户抢同一本书的最后一件:先提交的拿到,后提交的
	// 持锁重新校验时看到库存已为0,整单失败
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "最后一本", Price: 5900, Stock: 1},
	)
	f.fillCart(1, cart.CartItem{BookID: 1, Quantity: 1})
	f.fillCart(2, cart.CartItem{BookID: 1, Quantity: 1})

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, userID := range []uint{1, 2} {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: userID})
			results[i] = err
		}(i, userID)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		require.True(t, errors.Is(err, order.ErrInsufficientStock), "落败方必须是库存不足: %v", err)
		losses++

		// 落败方看到的是胜出方扣减后的库存
		shortages, ok := apperrors.GetAppError(err).Details.([]order.StockShortage)
		require.True(t, ok)
		require.Len(t, shortages, 1)
		assert.Equal(t, uint(1), shortages[0].BookID)
		assert.Equal(t, 1, shortages[0].Requested)
		assert.Equal(t, 0, shortages[0].Available)
	}
	assert.Equal(t, 1, wins, "恰好一单成交")
	assert.Equal(t, 1, losses, "恰好一单落败")

	// 不超卖:库存刚好清零,只有一笔订单、一次扣款、一个购物车被清空
	assert.Equal(t, 0, f.bookRepo.books[1].Stock)
	assert.Len(t, f.orderRepo.orders, 1)
	assert.Len(t, f.gateway.charged, 1)
	assert.Len(t, f.cartRepo.cleared, 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	f.fillCart(1) // 空购物车

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrCartEmpty))
	assert.Equal(t, 42201, apperrors.GetAppError(err).Code)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "紧俏书", Price: 5900, Stock: 1},
		&book.Book{ID: 2, Title: "充足书", Price: 3000, Stock: 100},
		&book.Book{ID: 3, Title: "售罄书", Price: 2000, Stock: 0},
	)
	f.fillCart(1,
		cart.CartItem{BookID: 1, Quantity: 5},
		cart.CartItem{BookID: 2, Quantity: 1},
		cart.CartItem{BookID: 3, Quantity: 2},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrInsufficientStock))

	// 全有或全无:不足的行全部出现在明细里,一次看全
	appErr := apperrors.GetAppError(err)
	shortages, ok := appErr.Details.([]order.StockShortage)
	require.True(t, ok, "Details应该是逐行明细")
	require.Len(t, shortages, 2)
	assert.Equal(t, uint(1), shortages[0].BookID)
	assert.Equal(t, 5, shortages[0].Requested)
	assert.Equal(t, 1, shortages[0].Available)
	assert.Equal(t, uint(3), shortages[1].BookID)

	// 整单失败:不扣款、不落单、不扣库存、购物车保留
	assert.Empty(t, f.gateway.charged)
	assert.Empty(t, f.orderRepo.orders)
	assert.Equal(t, 100, f.bookRepo.books[2].Stock)
	assert.Empty(t, f.cartRepo.cleared)
}

func TestCheckout_PaymentDeclined(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "图书", Price: 5900, Stock: 10},
	)
	f.fillCart(1, cart.CartItem{BookID: 1, Quantity: 1})

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID:              1,
		ForcePaymentFailure: true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrPaymentFailed))
	assert.Equal(t, 40201, apperrors.GetAppError(err).Code)

	// 支付失败不落单、不扣库存、购物车保留
	assert.Empty(t, f.orderRepo.orders)
	assert.Equal(t, 10, f.bookRepo.books[1].Stock)
	assert.Empty(t, f.cartRepo.cleared)
	assert.Empty(t, f.publisher.events)
}

func TestCheckout_GatewayError(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "图书", Price: 5900, Stock: 10},
	)
	f.fillCart(1, cart.CartItem{BookID: 1, Quantity: 1})
	gatewayErr := errors.New("connection refused")
	f.gateway.err = gatewayErr

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.Error(t, err)

	// 网关故障对客户端统一表现为支付失败,底层错误保留在Err里
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, 40201, appErr.Code)
	assert.True(t, errors.Is(err, gatewayErr))
	assert.Empty(t, f.orderRepo.orders)
}

func TestCheckout_LockTimeout(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "图书", Price: 5900, Stock: 10},
	)
	f.fillCart(1, cart.CartItem{BookID: 1, Quantity: 1})
	f.txManager.err = context.DeadlineExceeded

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLockTimeout))
	assert.Equal(t, 40902, apperrors.GetAppError(err).Code)
}

func TestCheckout_PriceSnapshot(t *testing.T) {
	b := &book.Book{ID: 1, Title: "图书", Author: "作者", Price: 5900, Stock: 10}
	f := newCheckoutFixture(b)
	f.fillCart(1, cart.CartItem{BookID: 1, Quantity: 2})

	resp, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.NoError(t, err)

	// 订单行固化下单时的价格
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(5900), resp.Items[0].UnitPrice)
	assert.Equal(t, int64(11800), resp.Items[0].Subtotal)
	assert.Equal(t, "图书", resp.Items[0].Title)

	// 之后改价不影响已生成的订单
	require.NoError(t, b.UpdatePrice(9900))
	saved, err := f.orderRepo.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(5900), saved.Items[0].UnitPrice)
	assert.Equal(t, int64(11800), saved.Total)
}

func TestCheckout_MissingBook(t *testing.T) {
	// 购物车里的图书已被下架:锁定时查不到,整单失败
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "在售书", Price: 5900, Stock: 10},
	)
	f.fillCart(1,
		cart.CartItem{BookID: 1, Quantity: 1},
		cart.CartItem{BookID: 99, Quantity: 1},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
	assert.Empty(t, f.orderRepo.orders)
}
