package store

import (
	"encoding/json"
	"os"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// snapshotFile is the on-disk shape of types.Snapshot.
type snapshotFile struct {
	Cursor        int    `json:"cursor"`
	SourcePath    string `json:"source_path"`
	SortKey       string `json:"sort_key"`
	SortDirection string `json:"sort_direction"`
}

// Field names read from a snapshot, current name first. The second name is
// the key used by earlier state files.
var (
	cursorKeys    = []string{"cursor", "idx"}
	sourceKeys    = []string{"source_path", "csv_path"}
	sortKeyKeys   = []string{"sort_key", "sort_by"}
	directionKeys = []string{"sort_direction", "order"}
)

// LoadSnapshot reads the snapshot at path. It never fails: a missing file
// yields the defaults, unparsable content yields the defaults, and each
// field that cannot be decoded keeps its default while the others load.
func (s *Store) LoadSnapshot(path, identity string) types.Snapshot {
	snap := types.DefaultSnapshot(identity)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", path).Warn("snapshot unreadable, using defaults")
		}
		return snap
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("snapshot malformed, using defaults")
		return snap
	}

	var cursor int
	if decodeField(fields, cursorKeys, &cursor) && cursor >= 0 {
		snap.Cursor = cursor
	}
	var source string
	if decodeField(fields, sourceKeys, &source) {
		snap.SourcePath = source
	}
	var key string
	if decodeField(fields, sortKeyKeys, &key) && key != "" {
		snap.Sort.Key = key
	}
	var dir string
	if decodeField(fields, directionKeys, &dir) {
		if d, err := types.ParseDirection(dir); err == nil {
			snap.Sort.Direction = d
		}
	}
	return snap
}

// decodeField decodes the first present key into dst and reports success.
func decodeField(fields map[string]json.RawMessage, keys []string, dst any) bool {
	for _, k := range keys {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		return json.Unmarshal(raw, dst) == nil
	}
	return false
}

// SaveSnapshot writes snap to path atomically. Failures are logged and
// returned wrapped in ErrPersistence.
func (s *Store) SaveSnapshot(snap types.Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshotFile{
		Cursor:        snap.Cursor,
		SourcePath:    snap.SourcePath,
		SortKey:       snap.Sort.Key,
		SortDirection: string(snap.Sort.Direction),
	}, "", "  ")
	if err != nil {
		return s.persistFailed("save snapshot", path, err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data); err != nil {
		return s.persistFailed("save snapshot", path, err)
	}
	return nil
}
