package types

// Snapshot is the small persisted record needed to resume a session.
type Snapshot struct {
	Cursor     int      `json:"cursor"`
	SourcePath string   `json:"source_path"`
	Sort       SortSpec `json:"sort"`
}

// DefaultSnapshot returns the snapshot used when nothing usable is stored:
// cursor 0, no source, identity column ascending.
func DefaultSnapshot(identity string) Snapshot {
	return Snapshot{Sort: IdentitySort(identity)}
}
