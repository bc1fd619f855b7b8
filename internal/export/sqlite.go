// Package export writes a labeled table to a SQLite database for analysis.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Syuf1514/video-labeler/internal/recordset"
)

// Schema of the exported database. items has one row per item with the
// table's columns plus its position in the exported order; labels holds
// one row per (item, label) pair.
const (
	itemsTable  = "items"
	labelsTable = "labels"

	createLabels = `CREATE TABLE labels (
    item TEXT NOT NULL,
    label TEXT NOT NULL,
    value INTEGER NOT NULL,
    PRIMARY KEY (item, label)
);`
)

// ToSQLite writes t to a new SQLite database at dbPath. order lists the
// item identities in the order to record in items.position; pass
// t.IDs() for file order. The database is built under a temporary name in
// the same directory and renamed over dbPath, so an existing file is only
// replaced by a complete export.
func ToSQLite(ctx context.Context, t *recordset.Table, order []string, dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dbPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp db: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := write(ctx, t, order, tmpPath); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dbPath); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

func write(ctx context.Context, t *recordset.Table, order []string, path string) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	columns := t.Columns()
	labels := t.LabelColumns()
	isLabel := make(map[string]bool, len(labels))
	for _, l := range labels {
		isLabel[l] = true
	}

	if _, err := tx.ExecContext(ctx, createItems(t.Identity(), columns, isLabel)); err != nil {
		return fmt.Errorf("create %s: %w", itemsTable, err)
	}
	if _, err := tx.ExecContext(ctx, createLabels); err != nil {
		return fmt.Errorf("create %s: %w", labelsTable, err)
	}

	itemStmt, err := tx.PrepareContext(ctx, insertItem(columns))
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", itemsTable, err)
	}
	defer itemStmt.Close()
	labelStmt, err := tx.PrepareContext(ctx, `INSERT INTO labels (item, label, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", labelsTable, err)
	}
	defer labelStmt.Close()

	for pos, id := range order {
		args := make([]any, 0, len(columns)+1)
		args = append(args, pos)
		for _, col := range columns {
			v, err := cellValue(t, id, col, isLabel[col])
			if err != nil {
				return err
			}
			args = append(args, v)
		}
		if _, err := itemStmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert item %q: %w", id, err)
		}
		for _, l := range labels {
			v, err := t.Label(id, l)
			if err != nil {
				return err
			}
			if _, err := labelStmt.ExecContext(ctx, id, l, boolInt(v)); err != nil {
				return fmt.Errorf("insert label %q for %q: %w", l, id, err)
			}
		}
	}
	return tx.Commit()
}

func createItems(identity string, columns []string, isLabel map[string]bool) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE items (\n    position INTEGER NOT NULL")
	for _, col := range columns {
		b.WriteString(",\n    ")
		b.WriteString(quote(col))
		switch {
		case col == identity:
			b.WriteString(" TEXT PRIMARY KEY")
		case isLabel[col]:
			b.WriteString(" INTEGER")
		default:
			b.WriteString(" TEXT")
		}
	}
	b.WriteString("\n);")
	return b.String()
}

func insertItem(columns []string) string {
	names := make([]string, 0, len(columns)+1)
	names = append(names, "position")
	for _, col := range columns {
		names = append(names, quote(col))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO items (%s) VALUES (%s)", strings.Join(names, ", "), marks)
}

// cellValue converts a cell for insertion: labels become 0/1, nulls
// become NULL, everything else is stored as text.
func cellValue(t *recordset.Table, id, col string, label bool) (any, error) {
	if label {
		v, err := t.Label(id, col)
		if err != nil {
			return nil, err
		}
		return boolInt(v), nil
	}
	cell, err := t.Cell(id, col)
	if err != nil {
		return nil, err
	}
	if recordset.IsNull(cell) {
		return nil, nil
	}
	return cell, nil
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
