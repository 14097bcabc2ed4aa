package store

import (
	"bufio"
	"compress/zlib"
	"errors"
	"io"
	"os"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"github.com/spf13/afero"
)

// closeInto closes c and, if err doesn't already hold a failure,
// records c.Close's error into it. Used to fold multiple deferred
// closes into a single named return error.
func closeInto(c io.Closer, err *error) {
	if cErr := c.Close(); *err == nil && cErr != nil {
		*err = cErr
	}
}

// OpenLoose opens the loose object named by id, wraps it in a streaming
// zlib decompressor, and returns a buffered byte source positioned at
// the start of the preimage (header, then payload). The caller must
// call the returned close func once done reading.
func OpenLoose(cfg *config.Config, id ident.Identifier) (r *bufio.Reader, closeFn func() error, err error) {
	p := ObjectPath(cfg, id)
	f, err := cfg.FS.Open(p)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrObjectNotFound
		}
		return nil, nil, &IOError{Err: err}
	}

	zr, err := zlib.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, &InvalidFileError{Reason: "not a valid zlib stream: " + err.Error()}
	}

	closed := false
	closeFn = func() (cErr error) {
		if closed {
			return nil
		}
		closed = true
		closeInto(zr, &cErr)
		closeInto(f, &cErr)
		return cErr
	}

	return bufio.NewReader(zr), closeFn, nil
}

// ReadAll drains r's payload to the end of the stream. Used when a
// caller only needs the raw bytes following a header (e.g. to verify
// content_length) rather than a typed decode.
func ReadAll(r *bufio.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return b, nil
}
