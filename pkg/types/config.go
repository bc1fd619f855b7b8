package types

import "errors"

// Config holds the parameters of a labeling session.
type Config struct {
	// IdentityColumn names the column whose value uniquely names an item.
	IdentityColumn string `json:"identity_column" yaml:"identity_column"`
	// SnapshotPath is where the cursor/sort/source snapshot is kept.
	SnapshotPath string `json:"snapshot_path" yaml:"snapshot_path"`
	// DefaultTable is used as the source when the snapshot names none.
	DefaultTable string `json:"table" yaml:"table"`
}

// DefaultIdentityColumn is used when no identity column is configured.
const DefaultIdentityColumn = "path"

// Config validation errors.
var (
	ErrIdentityColumnEmpty = errors.New("identity column must not be empty")
	ErrSnapshotPathEmpty   = errors.New("snapshot path must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.IdentityColumn == "" {
		return ErrIdentityColumnEmpty
	}
	if c.SnapshotPath == "" {
		return ErrSnapshotPathEmpty
	}
	return nil
}
