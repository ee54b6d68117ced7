package jqcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxConsAndGet(t *testing.T) {
	c := NewCtx()
	_, ok := c.Head()
	assert.False(t, ok, "empty context has no head")

	c1 := c.Cons(Int(1))
	c2 := c1.Cons(Int(2))

	v, ok := c2.Get(0)
	require.True(t, ok)
	assert.Equal(t, Int(2), v)

	v, ok = c2.Get(1)
	require.True(t, ok)
	assert.Equal(t, Int(1), v)

	_, ok = c2.Get(2)
	assert.False(t, ok)
}

func TestCtxSkipIsImmutable(t *testing.T) {
	base := NewCtx().Cons(Int(1)).Cons(Int(2)).Cons(Int(3))
	skipped := base.Skip(1)

	v, _ := skipped.Head()
	assert.Equal(t, Int(2), v, "skip drops the most recent frame")

	v, _ = base.Head()
	assert.Equal(t, Int(3), v, "skipping must not mutate the original stack")
}

func TestCtxSharesTail(t *testing.T) {
	shared := NewCtx().Cons(Int(0))
	left := shared.Cons(Int(1))
	right := shared.Cons(Int(2))

	lv, _ := left.Get(1)
	rv, _ := right.Get(1)
	assert.Equal(t, lv, rv, "branches built on the same tail must observe the same shared frame")
}
