package engine

import (
	"sync/atomic"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Guard serializes persistence-triggering mutations with a pending-save
// flag. It does not queue: a mutation attempted while another is in flight
// is dropped with ErrBusy.
type Guard struct {
	pending atomic.Bool
}

// Do runs fn with the pending flag set and clears it when fn returns,
// whether fn succeeded or not. Returns ErrBusy without running fn if the
// flag is already set.
func (g *Guard) Do(fn func() error) error {
	if !g.pending.CompareAndSwap(false, true) {
		return types.ErrBusy
	}
	defer g.pending.Store(false)
	return fn()
}

// Busy reports whether a guarded mutation is in flight.
func (g *Guard) Busy() bool {
	return g.pending.Load()
}
