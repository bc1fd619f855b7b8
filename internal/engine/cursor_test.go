package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

func TestCursor_EmptyCollection(t *testing.T) {
	c := NewCursor(types.IdentitySort("path"), "a.csv")
	assert.ErrorIs(t, c.Advance(), types.ErrEmpty)
	assert.ErrorIs(t, c.Retreat(), types.ErrEmpty)
	c.JumpTo(7)
	assert.Equal(t, 0, c.Position())
}

func TestCursor_Wraps(t *testing.T) {
	c := NewCursor(types.IdentitySort("path"), "a.csv")
	c.SetCount(3)

	require.NoError(t, c.Retreat())
	assert.Equal(t, 2, c.Position())
	require.NoError(t, c.Advance())
	assert.Equal(t, 0, c.Position())
}

func TestCursor_AdvanceRetreatRoundTrip(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for start := 0; start < n; start++ {
			c := NewCursor(types.IdentitySort("path"), "")
			c.SetCount(n)
			c.JumpTo(start)
			require.NoError(t, c.Advance())
			require.NoError(t, c.Retreat())
			assert.Equal(t, start, c.Position(), "n=%d start=%d", n, start)
		}
	}
}

func TestCursor_JumpTo(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"in range", 2, 2},
		{"past end", 5, 1},
		{"negative", -1, 3},
		{"far negative", -9, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(types.IdentitySort("path"), "")
			c.SetCount(4)
			c.JumpTo(tt.n)
			assert.Equal(t, tt.want, c.Position())
		})
	}
}

func TestCursor_SetCountReclamps(t *testing.T) {
	c := NewCursor(types.IdentitySort("path"), "")
	c.SetCount(10)
	c.JumpTo(7)
	c.SetCount(5)
	assert.Equal(t, 2, c.Position())
	c.SetCount(0)
	assert.Equal(t, 0, c.Position())
}

func TestCursor_OnSortChanged(t *testing.T) {
	c := NewCursor(types.IdentitySort("path"), "")
	c.SetCount(5)
	c.JumpTo(3)

	assert.False(t, c.OnSortChanged(types.IdentitySort("path")))
	assert.Equal(t, 3, c.Position())

	spec := types.SortSpec{Key: "good", Direction: types.Descending}
	assert.True(t, c.OnSortChanged(spec))
	assert.Equal(t, 0, c.Position())
	assert.Equal(t, spec, c.Sort())

	require.NoError(t, c.Advance())
	assert.False(t, c.OnSortChanged(spec))
	assert.Equal(t, 1, c.Position())
}

func TestCursor_OnSourceChanged(t *testing.T) {
	c := NewCursor(types.IdentitySort("path"), "a.csv")
	c.SetCount(5)
	c.JumpTo(4)

	assert.False(t, c.OnSourceChanged("a.csv"))
	assert.Equal(t, 4, c.Position())

	assert.True(t, c.OnSourceChanged("b.csv"))
	assert.Equal(t, 0, c.Position())
	assert.Equal(t, "b.csv", c.Source())
}
