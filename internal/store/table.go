package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Syuf1514/video-labeler/internal/recordset"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

const utf8BOM = "\ufeff"

// LoadTable reads the CSV file at path into a record set keyed by the
// identity column. Returns ErrNotFound if path is missing, is a directory,
// or is not readable CSV, and ErrSchema if the identity column is absent
// or the rows violate the table invariants.
func (s *Store) LoadTable(path, identity string) (*recordset.Table, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrNotFound, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header row", types.ErrSchema, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrNotFound, path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrNotFound, path, err)
	}

	t, err := recordset.New(identity, header, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.log.WithFields(logrus.Fields{"path": path, "items": t.Len()}).Debug("table loaded")
	return t, nil
}

// SaveTable rewrites the whole table at path atomically. On failure the
// previous file is untouched, the error is logged, and an error wrapping
// ErrPersistence is returned.
func (s *Store) SaveTable(t *recordset.Table, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Records()); err != nil {
		return s.persistFailed("save table", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return s.persistFailed("save table", path, err)
	}
	return nil
}

func (s *Store) persistFailed(op, path string, err error) error {
	s.log.WithError(err).WithField("path", path).Errorf("%s failed", op)
	return fmt.Errorf("%w: %s %s: %w", types.ErrPersistence, op, path, err)
}
