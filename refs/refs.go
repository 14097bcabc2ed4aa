// Package refs reads HEAD and branch reference files. It does not
// support packed-refs or generic symbolic-ref chains beyond the single
// HEAD indirection the revision grammar requires.
package refs

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"golang.org/x/xerrors"
)

// ErrRefNotFound is returned when a ref file does not exist.
var ErrRefNotFound = errors.New("reference not found")

// ErrRefInvalid is returned when a ref file's contents are not a
// "ref: <path>" line nor a 40-hex identifier.
var ErrRefInvalid = errors.New("reference is not valid")

var symbolicHeadRegexp = regexp.MustCompile(`^ref: (?P<ref>.+)\s*$`)

// HEAD is the decoded state of .git/HEAD: either attached to a branch
// (Branch non-empty) or detached (ID set directly).
type HEAD struct {
	// Branch is the ref path HEAD points to, e.g. "refs/heads/main", or
	// empty when HEAD is detached.
	Branch string
	ID     ident.Identifier
}

// ReadHEAD reads and decodes .git/HEAD, accepting both the "ref: ..."
// symbolic form and a bare identifier (detached HEAD).
func ReadHEAD(cfg *config.Config) (HEAD, error) {
	data, err := readFile(cfg, "HEAD")
	if err != nil {
		return HEAD{}, err
	}

	if m := symbolicHeadRegexp.FindStringSubmatch(data); m != nil {
		refPath := strings.TrimSpace(m[1])
		target, err := readFile(cfg, refPath)
		if err != nil {
			return HEAD{}, err
		}
		id, err := ident.New(strings.TrimSpace(target))
		if err != nil {
			return HEAD{}, xerrors.Errorf("HEAD ref %s: %w", refPath, ErrRefInvalid)
		}
		return HEAD{Branch: refPath, ID: id}, nil
	}

	id, err := ident.New(strings.TrimSpace(data))
	if err != nil {
		return HEAD{}, xerrors.Errorf("detached HEAD: %w", ErrRefInvalid)
	}
	return HEAD{ID: id}, nil
}

// ResolveBranch reads refs/heads/<name> and returns its identifier.
func ResolveBranch(cfg *config.Config, name string) (ident.Identifier, error) {
	data, err := readFile(cfg, filepath.Join("refs", "heads", name))
	if err != nil {
		return ident.Identifier{}, err
	}
	id, err := ident.New(strings.TrimSpace(data))
	if err != nil {
		return ident.Identifier{}, xerrors.Errorf("branch %s: %w", name, ErrRefInvalid)
	}
	return id, nil
}

// CurrentBranch returns the short branch name HEAD points to, and false
// if HEAD is detached.
func CurrentBranch(cfg *config.Config) (name string, ok bool, err error) {
	head, err := ReadHEAD(cfg)
	if err != nil {
		return "", false, err
	}
	if head.Branch == "" {
		return "", false, nil
	}
	return strings.TrimPrefix(head.Branch, "refs/heads/"), true, nil
}

// ListBranches returns every branch name under refs/heads, sorted by
// name.
func ListBranches(cfg *config.Config) ([]string, error) {
	dir := filepath.Join(cfg.GitDirPath, "refs", "heads")
	entries, err := readDirNames(cfg, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, xerrors.Errorf("could not list branches: %w", err)
	}
	return entries, nil
}

func readFile(cfg *config.Config, relPath string) (string, error) {
	p := filepath.Join(cfg.GitDirPath, relPath)
	data, err := readAll(cfg, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", xerrors.Errorf("%s: %w", relPath, ErrRefNotFound)
		}
		return "", xerrors.Errorf("could not read %s: %w", relPath, err)
	}
	return string(data), nil
}
