package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "venues:active", []string{"a"}))

	var out []string
	assert.ErrorIs(t, c.Get(ctx, "venues:active", &out), ErrMiss)
	assert.Nil(t, out)
	assert.NoError(t, c.DeletePrefix(ctx, "venues:"))
}
