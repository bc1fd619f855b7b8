package engine

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Syuf1514/video-labeler/internal/recordset"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Store is the durable storage a Session reads from and writes through.
// *store.Store implements it.
type Store interface {
	LoadTable(path, identity string) (*recordset.Table, error)
	SaveTable(t *recordset.Table, path string) error
	LoadSnapshot(path, identity string) types.Snapshot
	SaveSnapshot(snap types.Snapshot, path string) error
}

// Session is one operator's view of a labeled table: the loaded record
// set, the cursor into its sorted order, and the event dispatcher. Every
// mutating action runs under the guard and persists before it returns.
type Session struct {
	id    string
	cfg   types.Config
	store Store
	log   *logrus.Entry
	guard Guard

	mu     sync.RWMutex
	table  *recordset.Table
	order  []string
	cursor *Cursor
	disp   Dispatcher
}

// New creates a session with no table loaded. Call Restore to load the
// persisted state. A nil logger discards output.
func New(cfg types.Config, st Store, log logrus.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New("engine: nil store")
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	id := newSessionID()
	return &Session{
		id:     id,
		cfg:    cfg,
		store:  st,
		log:    log.WithField("session", id),
		cursor: NewCursor(types.IdentitySort(cfg.IdentityColumn), ""),
	}, nil
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the session identifier attached to every log line.
func (s *Session) ID() string { return s.id }

// Busy reports whether a save is in flight.
func (s *Session) Busy() bool { return s.guard.Busy() }

// Restore loads the snapshot and the table it points at. The snapshot's
// sort key is validated against the table and reset to identity ascending
// if the column is gone; the cursor is then restored, wrapped into range.
// With no source in the snapshot the configured default table is used.
// Returns ErrNoSource when neither exists.
func (s *Session) Restore() error {
	_, err := s.mutate("restore", func() (error, error) {
		snap := s.store.LoadSnapshot(s.cfg.SnapshotPath, s.cfg.IdentityColumn)
		source := snap.SourcePath
		if source == "" {
			source = s.cfg.DefaultTable
		}
		s.cursor = NewCursor(snap.Sort, source)
		s.table = nil
		s.order = nil
		s.disp.Reset()
		if source == "" {
			return nil, types.ErrNoSource
		}

		t, err := s.store.LoadTable(source, s.cfg.IdentityColumn)
		if err != nil {
			return nil, err
		}
		s.table = t
		s.checkSortLocked()
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.cursor.JumpTo(snap.Cursor)
		s.log.WithFields(logrus.Fields{
			"source":   source,
			"items":    len(s.order),
			"position": s.cursor.Position(),
			"sort":     s.cursor.Sort().String(),
		}).Info("session restored")
		return nil, nil
	})
	return err
}

// Current returns the cursor and current item without changing anything.
func (s *Session) Current() types.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resultLocked(nil)
}

// LabelColumns returns the current label columns in table order. The
// 1-based position of a name is the digit that toggles it.
func (s *Session) LabelColumns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil
	}
	return s.table.LabelColumns()
}

// MetadataColumns returns the non-label, non-identity columns.
func (s *Session) MetadataColumns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil
	}
	return s.table.MetadataColumns()
}

// Columns returns every column of the loaded table, identity included.
func (s *Session) Columns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil
	}
	return s.table.Columns()
}

// Order returns the item identities in the current sort order.
func (s *Session) Order() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Table returns a copy of the loaded table, or nil.
func (s *Session) Table() *recordset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil
	}
	return s.table.Clone()
}

// SetSourcePath switches to the table at path. The new table is loaded
// first; if that fails with ErrNotFound or ErrSchema the switch is refused
// and the session keeps its current table and cursor. On success the
// cursor resets to 0 and the snapshot is saved. Setting the current path
// again is a no-op.
func (s *Session) SetSourcePath(path string) (types.Result, error) {
	path = strings.TrimSpace(path)
	return s.mutate("set source", func() (error, error) {
		if path == "" {
			return nil, types.ErrNoSource
		}
		if path == s.cursor.Source() && s.table != nil {
			return nil, nil
		}
		t, err := s.store.LoadTable(path, s.cfg.IdentityColumn)
		if err != nil {
			return nil, err
		}
		s.table = t
		if !s.cursor.OnSourceChanged(path) {
			s.cursor.JumpTo(0)
		}
		s.checkSortLocked()
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"source": path, "items": len(s.order)}).Info("source changed")
		return s.saveSnapshotLocked(), nil
	})
}

// SetSortSpec changes the sort. The key must be a column of the loaded
// table and the direction valid. A spec different from the current one
// resets the cursor to 0; an equal spec changes nothing.
func (s *Session) SetSortSpec(spec types.SortSpec) (types.Result, error) {
	return s.mutate("set sort", func() (error, error) {
		if !spec.Direction.Valid() {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidDirection, spec.Direction)
		}
		if err := s.requireTableLocked(); err != nil {
			return nil, err
		}
		if !s.table.HasColumn(spec.Key) {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownColumn, spec.Key)
		}
		if !s.cursor.OnSortChanged(spec) {
			return nil, nil
		}
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.log.WithField("sort", spec.String()).Info("sort changed")
		return s.saveSnapshotLocked(), nil
	})
}

// Advance moves to the next item, wrapping to the first.
func (s *Session) Advance() (types.Result, error) {
	return s.mutate("advance", func() (error, error) {
		return s.stepLocked((*Cursor).Advance)
	})
}

// Retreat moves to the previous item, wrapping to the last.
func (s *Session) Retreat() (types.Result, error) {
	return s.mutate("retreat", func() (error, error) {
		return s.stepLocked((*Cursor).Retreat)
	})
}

// JumpTo moves the cursor to position n, wrapped into range.
func (s *Session) JumpTo(n int) (types.Result, error) {
	return s.mutate("jump", func() (error, error) {
		return s.stepLocked(func(c *Cursor) error {
			if c.Count() == 0 {
				return types.ErrEmpty
			}
			c.JumpTo(n)
			return nil
		})
	})
}

// ToggleLabel flips the named label on the current item and saves the
// table. The cursor keeps its position even if the flip reorders items.
func (s *Session) ToggleLabel(name string) (types.Result, error) {
	return s.mutate("toggle label", func() (error, error) {
		return s.toggleLocked(name)
	})
}

// SetLabel sets the named label on the current item to value and saves
// the table.
func (s *Session) SetLabel(name string, value bool) (types.Result, error) {
	return s.mutate("set label", func() (error, error) {
		id, err := s.currentIDLocked()
		if err != nil {
			return nil, err
		}
		if err := s.table.SetLabel(id, name, value); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"item": id, "label": name, "value": value}).Info("label set")
		return s.saveTableLocked(), nil
	})
}

// AddLabel appends a label column initialised to 0 for every item and
// saves the table.
func (s *Session) AddLabel(name string) (types.Result, error) {
	name = strings.TrimSpace(name)
	return s.mutate("add label", func() (error, error) {
		if err := s.requireTableLocked(); err != nil {
			return nil, err
		}
		if err := s.table.AddLabel(name); err != nil {
			return nil, err
		}
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.log.WithField("label", name).Info("label added")
		return s.saveTableLocked(), nil
	})
}

// RemoveLabels drops the named label columns and saves the table. Names
// that are not label columns are skipped. Removing the sort key resets
// the sort to identity ascending and the cursor to 0.
func (s *Session) RemoveLabels(names ...string) (types.Result, error) {
	return s.mutate("remove labels", func() (error, error) {
		if err := s.requireTableLocked(); err != nil {
			return nil, err
		}
		removed := s.table.RemoveLabels(names...)
		if len(removed) == 0 {
			return nil, nil
		}
		var saveErr error
		if !s.table.HasColumn(s.cursor.Sort().Key) {
			s.cursor.OnSortChanged(types.IdentitySort(s.cfg.IdentityColumn))
			saveErr = s.saveSnapshotLocked()
		}
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.log.WithField("labels", strings.Join(removed, ",")).Info("labels removed")
		return errors.Join(s.saveTableLocked(), saveErr), nil
	})
}

// Reload re-reads the current source from disk, keeping the sort and the
// cursor position (wrapped into range). On failure the loaded table is
// kept.
func (s *Session) Reload() (types.Result, error) {
	return s.mutate("reload", func() (error, error) {
		source := s.cursor.Source()
		if source == "" {
			return nil, types.ErrNoSource
		}
		t, err := s.store.LoadTable(source, s.cfg.IdentityColumn)
		if err != nil {
			return nil, err
		}
		s.table = t
		var saveErr error
		if s.checkSortLocked() {
			saveErr = s.saveSnapshotLocked()
		}
		if err := s.refreshOrderLocked(); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"source": source, "items": len(s.order)}).Info("table reloaded")
		return saveErr, nil
	})
}

// HandleEvent resolves a keyboard event through the dispatcher and applies
// the resulting action. The label count is taken from the columns as they
// are now. While a save is in flight the event is rejected with ErrBusy
// and not recorded, so a redelivery fires once the save completes.
func (s *Session) HandleEvent(e types.Event) (types.Result, error) {
	return s.mutate("event", func() (error, error) {
		var labels []string
		if s.table != nil {
			labels = s.table.LabelColumns()
		}
		act := s.disp.Resolve(e, len(labels))
		switch act.Kind {
		case ActionAdvance:
			return s.stepLocked((*Cursor).Advance)
		case ActionRetreat:
			return s.stepLocked((*Cursor).Retreat)
		case ActionToggle:
			return s.toggleLocked(labels[act.Label])
		default:
			return nil, nil
		}
	})
}

// mutate runs fn under the guard and the write lock and builds the result
// from the state fn leaves behind. fn returns a non-fatal save error and
// an action error separately.
func (s *Session) mutate(op string, fn func() (saveErr, err error)) (types.Result, error) {
	var res types.Result
	err := s.guard.Do(func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		saveErr, err := fn()
		res = s.resultLocked(saveErr)
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, types.ErrBusy):
		s.log.WithField("op", op).Debug("dropped while save pending")
	default:
		s.log.WithError(err).WithField("op", op).Warn("action failed")
	}
	return res, err
}

func (s *Session) stepLocked(step func(*Cursor) error) (error, error) {
	if err := s.requireTableLocked(); err != nil {
		return nil, err
	}
	if err := step(s.cursor); err != nil {
		return nil, err
	}
	s.log.WithField("position", s.cursor.Position()).Debug("cursor moved")
	return s.saveSnapshotLocked(), nil
}

func (s *Session) toggleLocked(name string) (error, error) {
	id, err := s.currentIDLocked()
	if err != nil {
		return nil, err
	}
	v, err := s.table.ToggleLabel(id, name)
	if err != nil {
		return nil, err
	}
	if err := s.refreshOrderLocked(); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"item": id, "label": name, "value": v}).Info("label toggled")
	return s.saveTableLocked(), nil
}

func (s *Session) requireTableLocked() error {
	if s.table == nil {
		return types.ErrNoSource
	}
	return nil
}

func (s *Session) currentIDLocked() (string, error) {
	if err := s.requireTableLocked(); err != nil {
		return "", err
	}
	if len(s.order) == 0 {
		return "", types.ErrEmpty
	}
	return s.order[s.cursor.Position()], nil
}

// checkSortLocked resets the sort to identity ascending when its key is
// not a column of the loaded table. Reports whether it reset.
func (s *Session) checkSortLocked() bool {
	spec := s.cursor.Sort()
	if s.table.HasColumn(spec.Key) && spec.Direction.Valid() {
		return false
	}
	s.log.WithField("sort", spec.String()).Warn("sort key not in table, using identity order")
	return s.cursor.OnSortChanged(types.IdentitySort(s.cfg.IdentityColumn))
}

// refreshOrderLocked recomputes the sorted order and reclamps the cursor.
func (s *Session) refreshOrderLocked() error {
	order, err := s.table.SortedOrder(s.cursor.Sort())
	if err != nil {
		return err
	}
	s.order = order
	s.cursor.SetCount(len(order))
	return nil
}

func (s *Session) saveTableLocked() error {
	return s.store.SaveTable(s.table, s.cursor.Source())
}

func (s *Session) saveSnapshotLocked() error {
	snap := types.Snapshot{
		Cursor:     s.cursor.Position(),
		SourcePath: s.cursor.Source(),
		Sort:       s.cursor.Sort(),
	}
	return s.store.SaveSnapshot(snap, s.cfg.SnapshotPath)
}

func (s *Session) resultLocked(saveErr error) types.Result {
	res := types.Result{
		Position: s.cursor.Position(),
		Count:    len(s.order),
		Sort:     s.cursor.Sort(),
		Source:   s.cursor.Source(),
		SaveErr:  saveErr,
	}
	if s.table != nil && len(s.order) > 0 {
		if view, err := s.table.Item(s.order[s.cursor.Position()]); err == nil {
			res.Item = &view
		}
	}
	return res
}
