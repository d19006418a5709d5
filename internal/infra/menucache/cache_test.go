package menucache

import (
	"context"
	"os"
	"testing"
	"time"

	"menu-app/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	_, err := c.Get(ctx, "en")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "en", []byte(`[1]`)))
	got, err := c.Get(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx, "en")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "pt", []byte("x")))
	now = now.Add(2 * time.Minute)

	_, err := c.Get(ctx, "pt")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemory_ZeroTTLDisables(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0)
	require.NoError(t, c.Set(ctx, "pt", []byte("x")))
	_, err := c.Get(ctx, "pt")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New("", time.Minute, logger.Nop())
	_, ok := c.(*Memory)
	assert.True(t, ok)

	c = New("not-a-url", time.Minute, logger.Nop())
	_, ok = c.(*Memory)
	assert.True(t, ok)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("MENU_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: MENU_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	c, err := NewRedis(url, "menu-test:", time.Minute)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(ctx, "en", []byte("menu")))
	got, err := c.Get(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, []byte("menu"), got)

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx, "en")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
