// Package index decodes .git/index and, from it, enumerates the
// working-tree files that are not tracked.
package index

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"path/filepath"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var magic = [4]byte{'D', 'I', 'R', 'C'}

// Entry is a single tracked file: its blob identifier and the
// canonicalized absolute path it was recorded at.
type Entry struct {
	ID   ident.Identifier
	Path string
}

// Index is the decoded contents of .git/index. Extensions and the
// trailing checksum are skipped; decoding stops after the declared
// entry count.
type Index struct {
	Version uint32
	Entries []Entry
}

// Read opens and decodes .git/index for cfg.
func Read(cfg *config.Config) (*Index, error) {
	raw, err := afero.ReadFile(cfg.FS, filepath.Join(cfg.GitDirPath, "index"))
	if err != nil {
		return nil, xerrors.Errorf("could not read index: %w", ErrInvalidIndex)
	}
	return Decode(bytes.NewReader(raw), cfg.FS, cfg.WorkTreePath)
}

// Decode parses the index binary format from r. workTree is used to
// canonicalize each entry's recorded path into an absolute path, and
// fs is consulted to confirm that path still exists on disk.
func Decode(r io.Reader, fs afero.Fs, workTree string) (*Index, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, xerrors.Errorf("could not read header: %w", ErrInvalidIndex)
	}
	if hdr != magic {
		return nil, xerrors.Errorf("bad magic %q: %w", string(hdr[:]), ErrInvalidIndex)
	}

	version, err := readUint32(r)
	if err != nil {
		return nil, xerrors.Errorf("could not read version: %w", ErrInvalidIndex)
	}

	count, err := readUint32(r)
	if err != nil {
		return nil, xerrors.Errorf("could not read entry count: %w", ErrInvalidIndex)
	}

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := readEntry(r, version, fs, workTree)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	// Extensions and the SHA-1 trailer are deliberately left unread.
	return &Index{Version: version, Entries: entries}, nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readEntry(r io.Reader, version uint32, fs afero.Fs, workTree string) (Entry, error) {
	length := 0

	var prefix [40]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Entry{}, &InvalidEntryError{Reason: "unable to read stat metadata"}
	}
	length += 40

	var sha1 [20]byte
	if _, err := io.ReadFull(r, sha1[:]); err != nil {
		return Entry{}, &InvalidEntryError{Reason: "unable to read sha1"}
	}
	length += 20
	id, err := ident.New(hex.EncodeToString(sha1[:]))
	if err != nil {
		return Entry{}, &InvalidEntryError{Reason: "invalid sha1"}
	}

	var flags [2]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return Entry{}, &InvalidEntryError{Reason: "unable to read flags"}
	}
	length += 2

	if version >= 3 {
		var extFlags [2]byte
		if _, err := io.ReadFull(r, extFlags[:]); err != nil {
			return Entry{}, &InvalidEntryError{Reason: "unable to read extended flags"}
		}
		length += 2
	}

	path, pathLen, err := readPath(r)
	if err != nil {
		return Entry{}, err
	}
	length += pathLen

	if version < 4 {
		pad := (8 - (length % 8)) % 8
		if pad > 0 {
			if _, err := io.CopyN(io.Discard, r, int64(pad)); err != nil {
				return Entry{}, &InvalidEntryError{Reason: "unable to read path padding"}
			}
		}
	}

	abs, err := canonicalize(fs, workTree, path)
	if err != nil {
		return Entry{}, err
	}

	return Entry{ID: id, Path: abs}, nil
}

// readPath reads a NUL-terminated path name, returning the path and
// the number of bytes consumed including the terminator.
func readPath(r io.Reader) (string, int, error) {
	var buf bytes.Buffer
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return "", 0, &InvalidEntryError{Reason: "unable to read path name"}
		}
		if b[0] == 0 {
			break
		}
		buf.WriteByte(b[0])
	}
	return buf.String(), buf.Len() + 1, nil
}

// canonicalize resolves path (as recorded in the index, possibly
// relative to workTree) to an absolute path and confirms it names a
// file that still exists. The core requires every entry to correspond
// to an existing path on disk.
func canonicalize(fs afero.Fs, workTree, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(path) {
		abs = filepath.Join(workTree, path)
	}
	abs = filepath.Clean(abs)

	if _, err := fs.Stat(abs); err != nil {
		return "", &InvalidEntryError{Reason: "path does not exist: " + path}
	}
	return abs, nil
}

