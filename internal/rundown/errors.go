package rundown

import "fmt"

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

type InvalidMoveError struct {
	Reason string
}

func (e InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

// StaleDragError signals that a drag gesture referenced indices that no longer
// resolve against the current canonical order (e.g. after a remote mutation).
// The gesture is aborted; the document is left untouched.
type StaleDragError struct {
	Reason string
}

func (e StaleDragError) Error() string {
	return "stale drag: " + e.Reason
}
