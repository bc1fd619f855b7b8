// Package recordset holds the in-memory table of media items: one row per
// item, one identity column, and any number of label (0/1) and metadata
// columns. It classifies columns, orders items, and applies label edits.
// The table is not safe for concurrent use; the engine serializes access.
package recordset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Table is an ordered record set keyed by its identity column.
type Table struct {
	identity string
	columns  []string
	rows     [][]string     // rows[r][c] is the cell of row r, column c
	index    map[string]int // identity value -> row
}

// New builds a table from a header and row-major cells. Returns ErrSchema
// if the identity column is missing, a column name repeats, a row has the
// wrong width, or an identity value is empty or repeated.
func New(identity string, columns []string, rows [][]string) (*Table, error) {
	if identity == "" {
		return nil, fmt.Errorf("%w: identity column name is empty", types.ErrSchema)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate column %q", types.ErrSchema, c)
		}
		seen[c] = true
	}
	if !seen[identity] {
		return nil, fmt.Errorf("%w: missing identity column %q", types.ErrSchema, identity)
	}

	t := &Table{
		identity: identity,
		columns:  slices.Clone(columns),
		rows:     make([][]string, 0, len(rows)),
		index:    make(map[string]int, len(rows)),
	}
	idCol := t.columnIndex(identity)
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", types.ErrSchema, i+1, len(row), len(columns))
		}
		id := row[idCol]
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: row %d has an empty %q", types.ErrSchema, i+1, identity)
		}
		if _, dup := t.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s %q", types.ErrSchema, identity, id)
		}
		t.index[id] = len(t.rows)
		t.rows = append(t.rows, slices.Clone(row))
	}
	return t, nil
}

// Identity returns the identity column name.
func (t *Table) Identity() string { return t.identity }

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Len returns the number of items.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether name is a column of the table.
func (t *Table) HasColumn(name string) bool { return t.columnIndex(name) >= 0 }

// HasItem reports whether id names a row.
func (t *Table) HasItem(id string) bool {
	_, ok := t.index[id]
	return ok
}

// IDs returns the identity values in storage order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.rows))
	idCol := t.columnIndex(t.identity)
	for i, row := range t.rows {
		ids[i] = row[idCol]
	}
	return ids
}

// Cell returns the raw value of column name for item id.
func (t *Table) Cell(id, name string) (string, error) {
	r, ok := t.index[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrUnknownItem, id)
	}
	c := t.columnIndex(name)
	if c < 0 {
		return "", fmt.Errorf("%w: %q", types.ErrUnknownColumn, name)
	}
	return t.rows[r][c], nil
}

// Records returns the header followed by every row, ready to be written.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, slices.Clone(t.columns))
	for _, row := range t.rows {
		out = append(out, slices.Clone(row))
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		identity: t.identity,
		columns:  slices.Clone(t.columns),
		rows:     make([][]string, len(t.rows)),
		index:    make(map[string]int, len(t.index)),
	}
	for i, row := range t.rows {
		c.rows[i] = slices.Clone(row)
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

func (t *Table) columnIndex(name string) int {
	return slices.Index(t.columns, name)
}

// column returns every cell of column c in storage order.
func (t *Table) column(c int) []string {
	vals := make([]string, len(t.rows))
	for i, row := range t.rows {
		vals[i] = row[c]
	}
	return vals
}
