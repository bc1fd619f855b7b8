package recordset

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// SortedOrder returns every identity value ordered by (spec.Key, identity).
// The primary key follows spec.Direction; the identity tie-breaker is always
// ascending. Nulls sort last in both directions. A column whose non-null
// values are all numbers compares numerically, otherwise lexically.
// Returns ErrUnknownColumn if spec.Key is not a column and
// ErrInvalidDirection if the direction is not recognised.
func (t *Table) SortedOrder(spec types.SortSpec) ([]string, error) {
	if !spec.Direction.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidDirection, spec.Direction)
	}
	key := t.columnIndex(spec.Key)
	if key < 0 {
		return nil, fmt.Errorf("%w: sort key %q", types.ErrUnknownColumn, spec.Key)
	}
	idCol := t.columnIndex(t.identity)
	keyNumeric := t.isNumeric(key)
	idNumeric := t.isNumeric(idCol)
	desc := spec.Direction == types.Descending

	perm := make([]int, len(t.rows))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		ra, rb := t.rows[a], t.rows[b]
		if c := compareCells(ra[key], rb[key], keyNumeric, desc); c != 0 {
			return c
		}
		return compareCells(ra[idCol], rb[idCol], idNumeric, false)
	})

	ids := make([]string, len(perm))
	for i, r := range perm {
		ids[i] = t.rows[r][idCol]
	}
	return ids, nil
}

func compareCells(a, b string, numeric, desc bool) int {
	an, bn := IsNull(a), IsNull(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}

	var c int
	if numeric {
		fa, _ := parseNumber(a)
		fb, _ := parseNumber(b)
		c = cmp.Compare(fa, fb)
	} else {
		c = strings.Compare(a, b)
	}
	if desc {
		return -c
	}
	return c
}
