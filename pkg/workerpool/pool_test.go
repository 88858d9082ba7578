package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandicecream/storefront/pkg/workerpool"
)

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 50
	var count atomic.Int64

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		err := pool.Submit(func() {
			defer wg.Done()
			count.Add(1)
		})
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, int64(n), count.Load())
}

func TestPool_SubmitNeverBlocksWhenFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.Submit(func() {
		close(started)
		<-blocker
	}))
	<-started

	// Fill the queue, then expect an immediate ErrPoolFull.
	var err error
	for i := 0; i < 100; i++ {
		if err = pool.Submit(func() {}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(blocker)
}

func TestPool_ShutdownDrainsInFlight(t *testing.T) {
	pool := workerpool.New(2)

	var done atomic.Int64
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(func() {
			time.Sleep(10 * time.Millisecond)
			done.Add(1)
		}))
	}

	pool.Shutdown()
	assert.Equal(t, int64(4), done.Load(), "accepted tasks must finish before Shutdown returns")

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPool_ConcurrentSubmitDuringShutdown(t *testing.T) {
	// Submits racing Shutdown must resolve to nil, ErrPoolFull or
	// ErrPoolClosed, never a send on a closed channel.
	for i := 0; i < 50; i++ {
		pool := workerpool.New(2)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					err := pool.Submit(func() {})
					if err != nil {
						assert.True(t,
							err == workerpool.ErrPoolFull || err == workerpool.ErrPoolClosed,
							"unexpected error: %v", err)
					}
				}
			}()
		}

		pool.Shutdown()
		wg.Wait()
	}
}

func TestPool_ShutdownIdempotent(t *testing.T) {
	pool := workerpool.New(1)
	pool.Shutdown()
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPool_RecoverFromPanickingTask(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(func() { panic("boom") }))

	ran := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(ran) }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker died after panicking task")
	}
}
