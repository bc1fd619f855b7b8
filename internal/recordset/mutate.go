package recordset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Label cell encodings written by edits.
const (
	flagOff = "0"
	flagOn  = "1"
)

// AddLabel appends a label column initialised to 0 for every item.
// Returns ErrInvalidName for a blank name and ErrDuplicateColumn when a
// column with exactly that name exists. The table is unchanged on error.
func (t *Table) AddLabel(name string) error {
	if strings.TrimSpace(name) == "" {
		return types.ErrInvalidName
	}
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %q", types.ErrDuplicateColumn, name)
	}
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], flagOff)
	}
	return nil
}

// RemoveLabels drops the named label columns and returns the names that
// were removed. Names that do not exist, or that are not label columns
// (including the identity column), are skipped silently.
func (t *Table) RemoveLabels(names ...string) []string {
	drop := make(map[int]bool, len(names))
	var removed []string
	for _, name := range names {
		c := t.columnIndex(name)
		if c < 0 || drop[c] || !t.IsLabel(name) {
			continue
		}
		drop[c] = true
		removed = append(removed, name)
	}
	if len(drop) == 0 {
		return nil
	}

	keep := func(cells []string) []string {
		out := make([]string, 0, len(cells)-len(drop))
		for c, v := range cells {
			if !drop[c] {
				out = append(out, v)
			}
		}
		return out
	}
	t.columns = keep(t.columns)
	for i, row := range t.rows {
		t.rows[i] = keep(row)
	}
	return removed
}

// ToggleLabel flips label name of item id between 0 and 1 and returns the
// new value. A null cell counts as 0. Returns ErrUnknownColumn if name is
// not a label column now and ErrUnknownItem if id is absent.
func (t *Table) ToggleLabel(id, name string) (bool, error) {
	r, c, err := t.labelCell(id, name)
	if err != nil {
		return false, err
	}
	cur, _ := parseFlag(t.rows[r][c])
	t.rows[r][c] = encodeFlag(!cur)
	return !cur, nil
}

// SetLabel sets label name of item id to value. It validates like
// ToggleLabel.
func (t *Table) SetLabel(id, name string, value bool) error {
	r, c, err := t.labelCell(id, name)
	if err != nil {
		return err
	}
	t.rows[r][c] = encodeFlag(value)
	return nil
}

// Label returns the current value of label name for item id.
func (t *Table) Label(id, name string) (bool, error) {
	r, c, err := t.labelCell(id, name)
	if err != nil {
		return false, err
	}
	v, _ := parseFlag(t.rows[r][c])
	return v, nil
}

func (t *Table) labelCell(id, name string) (row, col int, err error) {
	if !t.IsLabel(name) {
		return 0, 0, fmt.Errorf("%w: %q", types.ErrUnknownColumn, name)
	}
	r, ok := t.index[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", types.ErrUnknownItem, id)
	}
	return r, slices.Index(t.columns, name), nil
}

func encodeFlag(v bool) string {
	if v {
		return flagOn
	}
	return flagOff
}
