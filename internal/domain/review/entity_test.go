package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	t.Run("合法评分", func(t *testing.T) {
		r, err := NewReview(1, 2, 5, "好书", true)
		require.NoError(t, err)
		assert.Equal(t, ReviewStatusPending, r.Status, "新评论进入待审核")
		assert.True(t, r.VerifiedPurchase)
	})

	t.Run("评分越界", func(t *testing.T) {
		_, err := NewReview(1, 2, 0, "", true)
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = NewReview(1, 2, 6, "", true)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("评论内容可以为空", func(t *testing.T) {
		r, err := NewReview(1, 2, 3, "", true)
		require.NoError(t, err)
		assert.Empty(t, r.Comment)
	})
}

func TestReviewModeration(t *testing.T) {
	t.Run("待审核可通过", func(t *testing.T) {
		r, _ := NewReview(1, 2, 4, "不错", true)
		require.NoError(t, r.Approve())
		assert.Equal(t, ReviewStatusApproved, r.Status)
	})

	t.Run("待审核可驳回", func(t *testing.T) {
		r, _ := NewReview(1, 2, 1, "垃圾", true)
		require.NoError(t, r.Reject())
		assert.Equal(t, ReviewStatusRejected, r.Status)
	})

	t.Run("已通过不可重复审核", func(t *testing.T) {
		r, _ := NewReview(1, 2, 4, "", true)
		require.NoError(t, r.Approve())
		assert.ErrorIs(t, r.Approve(), ErrInvalidReviewStatus)
		assert.ErrorIs(t, r.Reject(), ErrInvalidReviewStatus)
	})

	t.Run("已驳回不可再通过", func(t *testing.T) {
		r, _ := NewReview(1, 2, 4, "", true)
		require.NoError(t, r.Reject())
		assert.ErrorIs(t, r.Approve(), ErrInvalidReviewStatus)
	})
}
