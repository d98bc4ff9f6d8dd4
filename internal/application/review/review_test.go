package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/order"
	"github.com/xiebiao/bookmall/internal/domain/review"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// =========================================
// 内存假件
// =========================================

type fakeReviewRepo struct {
	reviews     []*review.Review
	notFoundErr error // FindByUserAndBook未命中时返回的错误(默认裸哨兵)
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	rv.ID = uint(len(r.reviews) + 1)
	r.reviews = append(r.reviews, rv)
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	for _, rv := range r.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return nil, review.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	for _, rv := range r.reviews {
		if rv.UserID == userID && rv.BookID == bookID {
			return rv, nil
		}
	}
	if r.notFoundErr != nil {
		return nil, r.notFoundErr
	}
	return nil, review.ErrReviewNotFound
}

func (r *fakeReviewRepo) ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var result []*review.Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID && rv.Status == review.ReviewStatusApproved {
			result = append(result, rv)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeReviewRepo) ListPending(ctx context.Context, page, pageSize int) ([]*review.Review, int64, error) {
	var result []*review.Review
	for _, rv := range r.reviews {
		if rv.Status == review.ReviewStatusPending {
			result = append(result, rv)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, rv *review.Review) error { return nil }

func (r *fakeReviewRepo) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	var sum, n int
	for _, rv := range r.reviews {
		if rv.BookID == bookID && rv.Status == review.ReviewStatusApproved {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// fakeOrderRepo 只实现购买校验需要的查询
type fakeOrderRepo struct {
	purchased map[[2]uint]bool // (userID, bookID) → 已购
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }
func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (r *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (r *fakeOrderRepo) Update(ctx context.Context, o *order.Order) error { return nil }
func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) ListAll(ctx context.Context, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) ExistsByUserAndBook(ctx context.Context, userID, bookID uint) (bool, error) {
	return r.purchased[[2]uint{userID, bookID}], nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
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
	return nil, nil
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
	return nil, nil
}
func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error { return nil }

// =========================================
// 测试辅助
// =========================================

func newReviewFixture(purchased bool) (*ReviewUseCase, *fakeReviewRepo) {
	reviewRepo := &fakeReviewRepo{}
	orderRepo := &fakeOrderRepo{purchased: map[[2]uint]bool{}}
	if purchased {
		orderRepo.purchased[[2]uint{1, 2}] = true
	}
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		2: {ID: 2, Title: "图书", Price: 5900, Stock: 10},
	}}
	return NewReviewUseCase(reviewRepo, orderRepo, bookRepo), reviewRepo
}

// =========================================
// 测试用例
// =========================================

func TestCreateReview_PurchaseGate(t *testing.T) {
	t.Run("已购用户可评论", func(t *testing.T) {
		uc, _ := newReviewFixture(true)
		resp, err := uc.Create(context.Background(), CreateReviewRequest{
			UserID: 1, BookID: 2, Rating: 5, Comment: "好书",
		})
		require.NoError(t, err)
		assert.True(t, resp.VerifiedPurchase, "通过购买校验后固化为已购")
		assert.Equal(t, "待审核", resp.Status)
	})

	t.Run("未购用户被拒", func(t *testing.T) {
		uc, _ := newReviewFixture(false)
		_, err := uc.Create(context.Background(), CreateReviewRequest{
			UserID: 1, BookID: 2, Rating: 5,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, review.ErrNotPurchased)
		assert.Equal(t, apperrors.ErrCodeNotPurchased, apperrors.GetAppError(err).Code)
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc, _ := newReviewFixture(true)
		_, err := uc.Create(context.Background(), CreateReviewRequest{
			UserID: 1, BookID: 99, Rating: 5,
		})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestCreateReview_Duplicate(t *testing.T) {
	uc, _ := newReviewFixture(true)
	req := CreateReviewRequest{UserID: 1, BookID: 2, Rating: 4}

	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	// 每人每书一条
	_, err = uc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, review.ErrDuplicateReview)
}

func TestCreateReview_WrappedNotFound(t *testing.T) {
	// 仓储实现可能把未命中哨兵包一层上下文,按错误链匹配而非指针比较
	uc, reviewRepo := newReviewFixture(true)
	reviewRepo.notFoundErr = fmt.Errorf("查询评论失败: %w", review.ErrReviewNotFound)

	resp, err := uc.Create(context.Background(), CreateReviewRequest{
		UserID: 1, BookID: 2, Rating: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "待审核", resp.Status)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	uc, _ := newReviewFixture(true)
	_, err := uc.Create(context.Background(), CreateReviewRequest{
		UserID: 1, BookID: 2, Rating: 6,
	})
	assert.ErrorIs(t, err, review.ErrInvalidRating)
}

func TestListByBook_OnlyApproved(t *testing.T) {
	uc, reviewRepo := newReviewFixture(true)

	approved, _ := review.NewReview(1, 2, 5, "好", true)
	require.NoError(t, approved.Approve())
	pending, _ := review.NewReview(3, 2, 1, "差", false)
	_ = reviewRepo.Create(context.Background(), approved)
	_ = reviewRepo.Create(context.Background(), pending)

	resp, err := uc.ListByBook(context.Background(), 2, 1, 20)
	require.NoError(t, err)

	// 待审核的不对外可见,平均分只统计已通过
	require.Len(t, resp.List, 1)
	assert.Equal(t, 5, resp.List[0].Rating)
	assert.Equal(t, 5.0, resp.AverageRating)
}

func TestModerate(t *testing.T) {
	uc, reviewRepo := newReviewFixture(true)
	r, _ := review.NewReview(1, 2, 4, "", true)
	_ = reviewRepo.Create(context.Background(), r)

	t.Run("审核通过", func(t *testing.T) {
		resp, err := uc.Moderate(context.Background(), r.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "已通过", resp.Status)
	})

	t.Run("重复审核被拒", func(t *testing.T) {
		_, err := uc.Moderate(context.Background(), r.ID, false)
		assert.ErrorIs(t, err, review.ErrInvalidReviewStatus)
	})

	t.Run("评论不存在", func(t *testing.T) {
		_, err := uc.Moderate(context.Background(), 99, true)
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})
}
