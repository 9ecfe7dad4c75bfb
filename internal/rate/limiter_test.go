package rate

import (
	"context"
	"os"
	"testing"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := base
	l := NewMemoryLimiter(2, time.Minute)
	l.Now = func() time.Time { return now }
	ctx := context.Background()

	r, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, r.Allowed)
	require.EqualValues(t, 1, r.Remaining)

	r, _ = l.Allow(ctx, "1.2.3.4")
	require.True(t, r.Allowed)
	require.EqualValues(t, 0, r.Remaining)

	now = base.Add(20 * time.Second)
	r, _ = l.Allow(ctx, "1.2.3.4")
	require.False(t, r.Allowed)
	require.Equal(t, 40*time.Second, r.RetryAfter)

	// otra clave no comparte contador
	r, _ = l.Allow(ctx, "5.6.7.8")
	require.True(t, r.Allowed)

	// ventana siguiente
	now = base.Add(time.Minute)
	r, _ = l.Allow(ctx, "1.2.3.4")
	require.True(t, r.Allowed)
	require.EqualValues(t, 1, r.CurrentHits)
}

func TestDecide(t *testing.T) {
	r := decide(5, 3, -1, 30*time.Second)
	require.False(t, r.Allowed)
	require.Zero(t, r.Remaining)
	require.Equal(t, 30*time.Second, r.RetryAfter)
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := rdb.NewClient(&rdb.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, "test:rl:", 1, time.Minute)
	key := "login|" + time.Now().Format(time.RFC3339Nano)

	r, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	require.True(t, r.Allowed)

	r, err = l.Allow(context.Background(), key)
	require.NoError(t, err)
	require.False(t, r.Allowed)
	require.Positive(t, r.RetryAfter)
}
