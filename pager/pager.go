// Package pager pipes command output through the user's configured
// pager ($GIT_PAGER, core.pager, $PAGER, falling back to "less -R")
// when stdout is a terminal and the content is long enough to
// scroll off screen.
package pager

import (
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/loosegit/loosegit/config"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
	"golang.org/x/xerrors"
)

const defaultCmd = "less -R"

// Pager wraps an output destination that may or may not be piped
// through a subprocess. Callers write to Writer(); Close waits for the
// subprocess, if any, to finish draining its input.
type Pager struct {
	out   io.Writer
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Writer returns the destination callers should write command output
// to.
func (p *Pager) Writer() io.Writer {
	return p.out
}

// Close flushes and waits for the pager subprocess, if one was
// started. Closing a Pager that never spawned a subprocess is a no-op.
func (p *Pager) Close() error {
	if p.cmd == nil {
		return nil
	}
	if err := p.stdin.Close(); err != nil {
		return xerrors.Errorf("could not close pager stdin: %w", err)
	}
	if err := p.cmd.Wait(); err != nil {
		return xerrors.Errorf("pager exited with error: %w", err)
	}
	return nil
}

// Command resolves the pager command line per GIT_PAGER, core.pager,
// PAGER, falling back to "less -R".
func Command(e *config.Env, cfg *config.Config) string {
	if v := e.Get("GIT_PAGER"); v != "" {
		return v
	}
	if cfg != nil {
		if v, ok := cfg.Merged().Section("core", "pager"); ok && v != "" {
			return v
		}
	}
	if v := e.Get("PAGER"); v != "" {
		return v
	}
	return defaultCmd
}

// ShouldPage reports whether output worth `lines` lines, written to
// stdout, is worth piping through a pager: stdout must be a terminal
// and the content must not fit within its current height.
func ShouldPage(stdout *os.File, lines int) bool {
	if !isatty.IsTerminal(stdout.Fd()) && !isatty.IsCygwinTerminal(stdout.Fd()) {
		return false
	}
	_, height, err := term.GetSize(int(stdout.Fd()))
	if err != nil {
		return false
	}
	return lines > height
}

// New spawns cmdLine as a subprocess with its stdin piped from the
// returned Pager's Writer and its stdout/stderr inherited from the
// current process. If page is false, New returns a Pager that writes
// directly to out without spawning anything.
func New(out *os.File, page bool, cmdLine string) (*Pager, error) {
	if !page {
		return &Pager{out: out}, nil
	}

	args, err := shellquote.Split(cmdLine)
	if err != nil || len(args) == 0 {
		return nil, xerrors.Errorf("invalid pager command %q: %w", cmdLine, err)
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, xerrors.Errorf("could not create pager pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, xerrors.Errorf("could not start pager %q: %w", cmdLine, err)
	}

	return &Pager{out: stdin, cmd: cmd, stdin: stdin}, nil
}
