package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

func TestGuard_RejectsWhilePending(t *testing.T) {
	var g Guard
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)

	go func() {
		done <- g.Do(func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	assert.True(t, g.Busy())
	ran := false
	err := g.Do(func() error { ran = true; return nil })
	assert.ErrorIs(t, err, types.ErrBusy)
	assert.False(t, ran)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, g.Busy())
}

func TestGuard_ClearsAfterFailure(t *testing.T) {
	var g Guard
	boom := errors.New("boom")
	assert.ErrorIs(t, g.Do(func() error { return boom }), boom)
	assert.False(t, g.Busy())
	assert.NoError(t, g.Do(func() error { return nil }))
}

func TestGuard_ClearsAfterPanic(t *testing.T) {
	var g Guard
	assert.Panics(t, func() {
		_ = g.Do(func() error { panic("boom") })
	})
	assert.False(t, g.Busy())
}

func TestGuard_ConcurrentCallersNeverOverlap(t *testing.T) {
	var (
		g       Guard
		mu      sync.Mutex
		running int
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(func() error {
				mu.Lock()
				running++
				if running > 1 {
					overlap = true
				}
				mu.Unlock()

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
	assert.False(t, g.Busy())
}
