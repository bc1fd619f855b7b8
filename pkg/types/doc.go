// Package types defines the shared vocabulary of the video labeler: the
// session configuration, sort specifications, the persisted snapshot,
// input events, item views returned to the UI layer, and the standard
// error values every other package wraps.
package types
