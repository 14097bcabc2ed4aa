package index

import "errors"

// ErrInvalidIndex is returned when the index file itself is unreadable
// or malformed: bad magic or a truncated header. Failures inside an
// entry are reported as InvalidEntryError instead.
var ErrInvalidIndex = errors.New("invalid index file")

// InvalidEntryError reports why a single index entry failed to decode.
type InvalidEntryError struct {
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return "invalid index entry: " + e.Reason
}
