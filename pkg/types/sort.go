package types

import (
	"fmt"
	"strings"
)

// Direction is the ordering applied to the primary sort key.
type Direction string

// Sort directions. The identity tie-breaker is always ascending.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending" in any
// case. Returns ErrInvalidDirection for anything else.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// SortSpec selects the column and direction of the item order.
type SortSpec struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// IdentitySort is the fallback order: identity column, ascending.
func IdentitySort(identity string) SortSpec {
	return SortSpec{Key: identity, Direction: Ascending}
}

func (s SortSpec) String() string {
	return s.Key + " " + string(s.Direction)
}
