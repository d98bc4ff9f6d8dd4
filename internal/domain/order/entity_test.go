package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"已确认→已发货", OrderStatusConfirmed, OrderStatusShipped, true},
		{"已确认→已取消", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"已确认→已完成(跳过发货)", OrderStatusConfirmed, OrderStatusCompleted, false},
		{"已发货→已完成", OrderStatusShipped, OrderStatusCompleted, true},
		{"已发货→已取消", OrderStatusShipped, OrderStatusCancelled, false},
		{"已完成→已发货(终态)", OrderStatusCompleted, OrderStatusShipped, false},
		{"已取消→已确认(终态)", OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from}
			err := o.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, o.Status, "失败时状态不变")
			}
		})
	}
}

func TestOrderDomainBehaviors(t *testing.T) {
	t.Run("发货-完成链路", func(t *testing.T) {
		o := NewOrder("BO20260901000001", 1, nil, 0)
		assert.Equal(t, OrderStatusConfirmed, o.Status)

		require.NoError(t, o.Ship())
		require.NoError(t, o.Complete())
		assert.Equal(t, OrderStatusCompleted, o.Status)
	})

	t.Run("取消后不可再操作", func(t *testing.T) {
		o := NewOrder("BO20260901000002", 1, nil, 0)
		require.NoError(t, o.Cancel())
		assert.Error(t, o.Ship())
		assert.Error(t, o.Complete())
	})
}

func TestOrderCalculateTotal(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Quantity: 2, UnitPrice: 5900},
		{BookID: 2, Quantity: 1, UnitPrice: 3000},
	}
	o := NewOrder("BO20260901000003", 1, items, 14800)

	assert.Equal(t, int64(14800), o.CalculateTotal())
	assert.Equal(t, o.Total, o.CalculateTotal(), "冗余总额与明细一致")
	assert.Equal(t, int64(11800), items[0].Subtotal())
}

func TestOrderOwnershipAndContains(t *testing.T) {
	o := NewOrder("BO20260901000004", 7, []OrderItem{
		{BookID: 3, Quantity: 1, UnitPrice: 100},
	}, 100)

	assert.True(t, o.IsOwnedBy(7))
	assert.False(t, o.IsOwnedBy(8))
	assert.True(t, o.ContainsBook(3))
	assert.False(t, o.ContainsBook(4))
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.True(t, len(no) > 3)
	assert.Equal(t, "ORD", no[:3])
}
