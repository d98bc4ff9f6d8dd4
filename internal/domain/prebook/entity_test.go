package prebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreBookNotify(t *testing.T) {
	p := NewPreBook(1, 2)
	assert.Equal(t, PreBookStatusWaiting, p.Status)
	assert.Nil(t, p.NotifiedAt)

	require.NoError(t, p.Notify())
	assert.Equal(t, PreBookStatusNotified, p.Status)
	assert.NotNil(t, p.NotifiedAt)

	// 已通知不可重复通知
	assert.ErrorIs(t, p.Notify(), ErrInvalidPreBookStatus)
}

func TestPreBookCancel(t *testing.T) {
	t.Run("等待中可取消", func(t *testing.T) {
		p := NewPreBook(1, 2)
		require.NoError(t, p.Cancel())
		assert.Equal(t, PreBookStatusCancelled, p.Status)
	})

	t.Run("已通知不可取消", func(t *testing.T) {
		p := NewPreBook(1, 2)
		require.NoError(t, p.Notify())
		assert.ErrorIs(t, p.Cancel(), ErrInvalidPreBookStatus)
	})

	t.Run("已取消不可再通知", func(t *testing.T) {
		p := NewPreBook(1, 2)
		require.NoError(t, p.Cancel())
		assert.ErrorIs(t, p.Notify(), ErrInvalidPreBookStatus)
	})
}

func TestPreBookIsOwnedBy(t *testing.T) {
	p := NewPreBook(7, 2)
	assert.True(t, p.IsOwnedBy(7))
	assert.False(t, p.IsOwnedBy(8))
}
