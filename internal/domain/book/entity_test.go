package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookStockBehaviors(t *testing.T) {
	t.Run("扣减库存", func(t *testing.T) {
		b := NewBook("9787111111111", "图书", "作者", 1, 5900, 10, "", "")
		require.NoError(t, b.DecrStock(3))
		assert.Equal(t, 7, b.Stock)
	})

	t.Run("扣减超过库存", func(t *testing.T) {
		b := NewBook("9787111111111", "图书", "作者", 1, 5900, 2, "", "")
		assert.ErrorIs(t, b.DecrStock(3), ErrInsufficientStock)
		assert.Equal(t, 2, b.Stock, "失败时库存不变")
	})

	t.Run("非法数量", func(t *testing.T) {
		b := NewBook("9787111111111", "图书", "作者", 1, 5900, 10, "", "")
		assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.IncrStock(-1), ErrInvalidQuantity)
	})

	t.Run("设置库存", func(t *testing.T) {
		b := NewBook("9787111111111", "图书", "作者", 1, 5900, 0, "", "")
		require.NoError(t, b.SetStock(5))
		assert.Equal(t, 5, b.Stock)
		assert.ErrorIs(t, b.SetStock(-1), ErrInvalidStock)
	})

	t.Run("库存判定", func(t *testing.T) {
		b := NewBook("9787111111111", "图书", "作者", 1, 5900, 0, "", "")
		assert.False(t, b.InStock())
		require.NoError(t, b.IncrStock(1))
		assert.True(t, b.InStock())
	})
}

func TestBookUpdatePrice(t *testing.T) {
	b := NewBook("9787111111111", "图书", "作者", 1, 5900, 10, "", "")

	require.NoError(t, b.UpdatePrice(6900))
	assert.Equal(t, int64(6900), b.Price)

	assert.ErrorIs(t, b.UpdatePrice(0), ErrInvalidPrice)
	assert.ErrorIs(t, b.UpdatePrice(-100), ErrInvalidPrice)
	assert.Equal(t, int64(6900), b.Price, "失败时价格不变")
}

func TestBookUpdateInfo(t *testing.T) {
	b := NewBook("9787111111111", "原名", "原作者", 1, 5900, 10, "", "原简介")

	// 空字段不覆盖
	b.UpdateInfo("新名", "", "", 0)
	assert.Equal(t, "新名", b.Title)
	assert.Equal(t, "原作者", b.Author)
	assert.Equal(t, "原简介", b.Description)
	assert.Equal(t, uint(1), b.GenreID)

	b.UpdateInfo("", "新作者", "新简介", 2)
	assert.Equal(t, "新名", b.Title)
	assert.Equal(t, "新作者", b.Author)
	assert.Equal(t, uint(2), b.GenreID)
}
