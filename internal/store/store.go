package store

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Store reads and writes the table and snapshot files. Write failures are
// logged here and returned wrapped in types.ErrPersistence; callers treat
// them as non-fatal.
type Store struct {
	log logrus.FieldLogger
}

// New returns a Store that logs through log. A nil logger discards.
func New(log logrus.FieldLogger) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Store{log: log}
}
