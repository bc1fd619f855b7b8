package engine

import (
	"strconv"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// ActionKind is what a resolved event asks the session to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAdvance
	ActionRetreat
	ActionToggle
)

// Action is a resolved event. Label is the zero-based index into the
// current label columns for ActionToggle.
type Action struct {
	Kind  ActionKind
	Label int
}

// keyActions maps key names to navigation. Browser key names are aliases.
var keyActions = map[string]ActionKind{
	types.KeyRight: ActionAdvance,
	"ArrowRight":   ActionAdvance,
	types.KeySpace: ActionAdvance,
	" ":            ActionAdvance,
	types.KeyLeft:  ActionRetreat,
	"ArrowLeft":    ActionRetreat,
}

// Dispatcher turns a redelivering event stream into at-most-once actions.
// It remembers the last handled event; the same event seen again is
// ignored until an empty event re-arms it.
type Dispatcher struct {
	last  types.Event
	armed bool // false until an event has been handled
}

// Resolve returns the action for e. Empty events clear the last handled
// event and resolve to ActionNone. A repeat of the last handled event
// resolves to ActionNone. Any other event is recorded and mapped: right,
// space and their aliases advance, left retreats, a digit d in
// [1, labelCount] toggles label d-1, and everything else is ActionNone.
func (d *Dispatcher) Resolve(e types.Event, labelCount int) Action {
	if e.Empty() {
		d.Reset()
		return Action{}
	}
	if d.armed && e == d.last {
		return Action{}
	}
	d.last = e
	d.armed = true
	return mapKey(e.Key, labelCount)
}

// Reset forgets the last handled event.
func (d *Dispatcher) Reset() {
	d.last = types.Event{}
	d.armed = false
}

func mapKey(key string, labelCount int) Action {
	if kind, ok := keyActions[key]; ok {
		return Action{Kind: kind}
	}
	n, err := strconv.Atoi(key)
	if err != nil || !isDigits(key) {
		return Action{}
	}
	if n < 1 || n > labelCount {
		return Action{}
	}
	return Action{Kind: ActionToggle, Label: n - 1}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
