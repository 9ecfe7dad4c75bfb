package rate

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter es la versión local (un solo proceso) del fixed window.
// Los contadores viven en go-cache y expiran con su ventana.
type MemoryLimiter struct {
	c      *gocache.Cache
	Max    int64
	Window time.Duration
	// Now permite fijar el reloj en tests.
	Now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, time.Minute),
		Max:    int64(max),
		Window: window,
		Now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.Now().UTC()
	winStart := now.Truncate(l.Window)
	winEnd := winStart.Add(l.Window)
	k := fmt.Sprintf("%s:%d", key, winStart.Unix())

	// Add falla si la clave ya existe; en ese caso solo incrementamos.
	_ = l.c.Add(k, int64(0), winEnd.Sub(now))
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		// expiró entre Add e Increment: arranca una ventana nueva
		l.c.Set(k, int64(1), winEnd.Sub(now))
		hits = 1
	}

	return decide(hits, l.Max, winEnd.Sub(now), l.Window), nil
}
