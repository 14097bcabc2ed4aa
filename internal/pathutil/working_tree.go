// Package pathutil locates repository roots by searching upward from a
// directory.
package pathutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/loosegit/loosegit/internal/gitpath"
	"golang.org/x/xerrors"
)

// ErrNoRepo is returned when no repository is found in the current
// directory or any of its parents.
var ErrNoRepo = errors.New("not a git repository (or any of the parent directories)")

// RepoRoot returns the absolute path to the root of the repo containing
// the current working directory.
func RepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", xerrors.Errorf("could not get current working directory: %w", err)
	}
	return RepoRootFromPath(wd)
}

// RepoRootFromPath returns the absolute path to the root of the repo
// containing the provided directory. It recognizes both a standard repo
// (a ".git" directory) and a bare repo (a non-empty, non-directory "HEAD"
// file directly inside the candidate directory).
func RepoRootFromPath(p string) (string, error) {
	prev := ""
	for p != prev {
		info, err := os.Stat(filepath.Join(p, gitpath.DotGitPath))
		if err == nil && info.IsDir() {
			return p, nil
		}

		info, err = os.Stat(filepath.Join(p, gitpath.HEADPath))
		if err == nil && !info.IsDir() && info.Size() > 0 {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}

// WorkingTree returns the absolute path to the working tree containing
// the current working directory.
func WorkingTree() (path string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", xerrors.Errorf("could not get current working directory: %w", err)
	}
	return WorkingTreeFromPath(wd)
}

// WorkingTreeFromPath returns the absolute path to the root of a repo
// containing the provided directory.
func WorkingTreeFromPath(p string) (path string, err error) {
	prev := ""
	for p != prev {
		info, err := os.Stat(filepath.Join(p, gitpath.DotGitPath))
		if err == nil && info.IsDir() {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
