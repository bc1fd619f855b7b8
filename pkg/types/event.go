package types

// Canonical key names understood by the dispatcher. Browser-style names
// (ArrowRight, ArrowLeft, " ") are accepted as aliases.
const (
	KeyRight = "right"
	KeyLeft  = "left"
	KeySpace = "space"
)

// Event is one raw input event. Key is empty for the explicit "no key"
// state. Seq numbers physical events when the source can; a redelivered
// event carries the same Key and Seq. Sources that cannot number events
// leave Seq zero and the key alone identifies the event.
type Event struct {
	Key string
	Seq uint64
}

// Empty reports whether e is the "no key" state.
func (e Event) Empty() bool {
	return e.Key == ""
}
