// Package engine is the navigation and label-state synchronization core:
// the cursor controller, event dedup and dispatch, the mutation guard, and
// the Session that applies operator actions through them.
package engine

import "github.com/Syuf1514/video-labeler/pkg/types"

// Cursor is the position of the current item within the sorted order. It
// is only meaningful for the sort spec and source path it was set under;
// changing either resets it to 0.
type Cursor struct {
	pos    int
	count  int
	sort   types.SortSpec
	source string
}

// NewCursor returns a cursor at 0 over an empty collection.
func NewCursor(sort types.SortSpec, source string) *Cursor {
	return &Cursor{sort: sort, source: source}
}

func (c *Cursor) Position() int        { return c.pos }
func (c *Cursor) Count() int           { return c.count }
func (c *Cursor) Sort() types.SortSpec { return c.sort }
func (c *Cursor) Source() string       { return c.source }

// SetCount sets the collection size and wraps the position into range.
func (c *Cursor) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	c.count = n
	c.pos = wrap(c.pos, n)
}

// Advance moves to the next item, wrapping to the first.
// Returns ErrEmpty when there are no items.
func (c *Cursor) Advance() error {
	if c.count == 0 {
		return types.ErrEmpty
	}
	c.pos = wrap(c.pos+1, c.count)
	return nil
}

// Retreat moves to the previous item, wrapping to the last.
// Returns ErrEmpty when there are no items.
func (c *Cursor) Retreat() error {
	if c.count == 0 {
		return types.ErrEmpty
	}
	c.pos = wrap(c.pos-1, c.count)
	return nil
}

// JumpTo sets the position directly. Out-of-range values wrap modulo the
// count; an empty collection pins the cursor to 0.
func (c *Cursor) JumpTo(n int) {
	c.pos = wrap(n, c.count)
}

// OnSortChanged records spec and resets the position to 0 if it differs
// from the previous spec. Reports whether a reset happened.
func (c *Cursor) OnSortChanged(spec types.SortSpec) bool {
	if spec == c.sort {
		return false
	}
	c.sort = spec
	c.pos = 0
	return true
}

// OnSourceChanged records path and resets the position to 0 if it differs
// from the previous source. Reports whether the caller must reload.
func (c *Cursor) OnSourceChanged(path string) bool {
	if path == c.source {
		return false
	}
	c.source = path
	c.pos = 0
	return true
}

func wrap(n, count int) int {
	if count <= 0 {
		return 0
	}
	n %= count
	if n < 0 {
		n += count
	}
	return n
}
