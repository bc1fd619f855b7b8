package types

import "errors"

// Source and schema errors. Both are fatal to the current table and are
// surfaced to the operator.
var (
	ErrNotFound = errors.New("table file not found")
	ErrSchema   = errors.New("invalid table schema")
	ErrNoSource = errors.New("no table source configured")
)

// Caller errors. The operation is aborted and state is left unchanged.
var (
	ErrDuplicateColumn  = errors.New("column already exists")
	ErrUnknownColumn    = errors.New("unknown label column")
	ErrUnknownItem      = errors.New("unknown item")
	ErrInvalidName      = errors.New("invalid column name")
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// Guard and navigation conditions. ErrBusy means a save is in flight and
// the action was dropped; the UI must offer it again.
var (
	ErrBusy  = errors.New("save in progress")
	ErrEmpty = errors.New("no items")
)

// ErrPersistence wraps every failed write. The in-memory state stays the
// source of truth and the session continues.
var ErrPersistence = errors.New("persistence failed")
