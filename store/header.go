package store

import (
	"bufio"
	"errors"
	"strconv"

	"github.com/loosegit/loosegit/object"
	"golang.org/x/xerrors"
)

// DecodeHeader reads the `<type> SP <size> NUL` prefix from r, positioned
// at the start of a decompressed loose object, and returns the decoded
// Header. On return, r is positioned at the first payload byte.
func DecodeHeader(r *bufio.Reader) (object.Header, error) {
	typeBytes, err := r.ReadBytes(' ')
	if err != nil {
		return object.Header{}, &InvalidFileError{Reason: "EOF before type delimiter"}
	}
	typ, err := object.ParseType(string(typeBytes[:len(typeBytes)-1]))
	if err != nil {
		return object.Header{}, &InvalidFileError{Reason: err.Error()}
	}

	sizeBytes, err := r.ReadBytes(0)
	if err != nil {
		return object.Header{}, &InvalidFileError{Reason: "EOF before size delimiter"}
	}
	sizeStr := string(sizeBytes[:len(sizeBytes)-1])
	size, err := strconv.ParseUint(sizeStr, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return object.Header{}, &InvalidFileError{Reason: "size overflows 64 bits"}
		}
		return object.Header{}, xerrors.Errorf("non-numeric size %q: %w", sizeStr, &InvalidFileError{Reason: "non-numeric size"})
	}

	return object.Header{Type: typ, ContentLength: size}, nil
}
