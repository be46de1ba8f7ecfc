package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSerialisesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "owner-a")
			require.NoError(t, err)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.held())
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	releaseA, err := l.Acquire(ctx, "owner-a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	releaseB, err := l.Acquire(ctx, "owner-b")
	require.NoError(t, err)
	releaseB()
}

func TestLocalAcquireHonoursContext(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "owner-a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "owner-a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release() // second call is a no-op
	assert.Equal(t, 0, l.held())
}
