package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartIsEmpty(t *testing.T) {
	c := NewCart(1)
	assert.True(t, c.IsEmpty())

	c.Items = append(c.Items, CartItem{BookID: 1, Quantity: 1})
	assert.False(t, c.IsEmpty())
}

func TestCartFindItem(t *testing.T) {
	c := NewCart(1)
	c.Items = []CartItem{
		{BookID: 1, Quantity: 2},
		{BookID: 5, Quantity: 1},
	}

	item := c.FindItem(5)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Quantity)

	// 返回的是切片内元素的指针,修改直接生效
	item.Quantity = 9
	assert.Equal(t, 9, c.Items[1].Quantity)

	assert.Nil(t, c.FindItem(99))
}

func TestCartTotalQuantity(t *testing.T) {
	c := NewCart(1)
	assert.Equal(t, 0, c.TotalQuantity())

	c.Items = []CartItem{
		{BookID: 1, Quantity: 2},
		{BookID: 2, Quantity: 3},
	}
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestCartBookIDs(t *testing.T) {
	c := NewCart(1)
	assert.Empty(t, c.BookIDs())

	c.Items = []CartItem{
		{BookID: 9, Quantity: 1},
		{BookID: 3, Quantity: 1},
	}
	assert.Equal(t, []uint{9, 3}, c.BookIDs(), "按条目顺序返回,排序是调用方的事")
}
