package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/pager"
	"github.com/loosegit/loosegit/repo"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// usageError marks a failure as a flag/contract violation rather than
// a read or resolution failure, mapped to exit code 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(msg string) error {
	return &usageError{err: errors.New(msg)}
}

// exitCodeFor maps a command error to a process exit code: 2 for
// usage/flag violations and for `log` resolving to a non-commit
// object, 1 for everything else (I/O and resolution failures).
func exitCodeFor(err error) int {
	var u *usageError
	if errors.As(err, &u) {
		return 2
	}
	if errors.Is(err, repo.ErrNotACommit) {
		return 2
	}
	return 1
}

func loadRepository(flags *globalFlags) (*repo.Repository, error) {
	fs := flags.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cfg, err := config.Load(flags.env, config.LoadOptions{
		FS:               fs,
		WorkingDirectory: flags.C.String(),
		GitDirPath:       flags.gitDir,
		SkipGitDirLookUp: flags.gitDir != "",
	})
	if err != nil {
		return nil, xerrors.Errorf("could not load repository config: %w", err)
	}
	return repo.Open(cfg, flags.tracer), nil
}

// runPaged renders into a buffer first, then either writes it straight
// to out or, when out is the process's real stdout and the rendered
// content overflows the terminal, pipes it through the configured
// pager. Tests call the *Cmd functions directly and never go through
// this path, since they pass a bytes.Buffer as out.
func runPaged(out io.Writer, flags *globalFlags, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	stdout, ok := out.(*os.File)
	if !ok || stdout != os.Stdout {
		_, err := io.Copy(out, &buf)
		return err
	}

	lines := strings.Count(buf.String(), "\n")
	if !pager.ShouldPage(stdout, lines) {
		_, err := io.Copy(out, &buf)
		return err
	}

	var cfg *config.Config
	if r, err := loadRepository(flags); err == nil {
		cfg = r.Config()
	}

	p, err := pager.New(stdout, true, pager.Command(flags.env, cfg))
	if err != nil {
		return err
	}
	if _, err := io.Copy(p.Writer(), &buf); err != nil {
		return err
	}
	return p.Close()
}
