package revision

import "errors"

// ErrInvalidRevision is the single error variant returned for any
// resolution failure: malformed syntax, missing files, parent of a
// rootless commit.
var ErrInvalidRevision = errors.New("invalid revision")

// ErrAmbiguousRevision is returned when an abbreviated hash matches
// more than one loose object, rather than asserting non-ambiguity.
var ErrAmbiguousRevision = errors.New("ambiguous revision")
