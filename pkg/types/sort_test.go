package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "asc", want: Ascending},
		{in: "Ascending", want: Ascending},
		{in: " DESC ", want: Descending},
		{in: "descending", want: Descending},
		{in: "up", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionFlip(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Flip())
	assert.Equal(t, Ascending, Descending.Flip())
	assert.True(t, Ascending.Valid())
	assert.False(t, Direction("sideways").Valid())
}

func TestIdentitySort(t *testing.T) {
	spec := IdentitySort("filename")
	assert.Equal(t, SortSpec{Key: "filename", Direction: Ascending}, spec)
	assert.Equal(t, "filename ascending", spec.String())
}
