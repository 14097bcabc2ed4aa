// Package object decodes the typed payload of a loose git object: the
// header that names its type and size, and the commit grammar layered
// on top of a commit payload.
package object

import (
	"errors"
)

// Type is the closed set of object kinds the core understands. Tag and
// any other type string is a parse error.
type Type int

const (
	// TypeBlob is an opaque content blob. Its body is not parsed.
	TypeBlob Type = iota + 1
	// TypeTree is a tree listing. Its body is not parsed.
	TypeTree
	// TypeCommit is a commit record, fully parsed by this package.
	TypeCommit
)

// ErrUnknownType is returned when a header names a type other than
// "blob", "tree", or "commit".
var ErrUnknownType = errors.New("unknown object type")

// String returns the on-disk spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeBlob:
		return "blob"
	case TypeTree:
		return "tree"
	case TypeCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// ParseType maps an on-disk type name to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "blob":
		return TypeBlob, nil
	case "tree":
		return TypeTree, nil
	case "commit":
		return TypeCommit, nil
	default:
		return 0, ErrUnknownType
	}
}
