package object

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/internal/readutil"
	"golang.org/x/xerrors"
)

// CommitUser is the author or committer of a commit: a free-text name
// (which, per the on-disk grammar, also carries the "<email>" portion
// as part of the same text field) paired with the instant the action
// was taken.
type CommitUser struct {
	Name string
	Date time.Time
}

// CommitRecord is a fully decoded commit object.
//
// Parent captures only the first `parent` line encountered. Merge
// commits have additional parents that this core does not expose.
type CommitRecord struct {
	Name      ident.Identifier
	Tree      ident.Identifier
	Parent    *ident.Identifier
	Author    CommitUser
	Committer CommitUser
	Message   string
}

var (
	treeLineRegexp      = regexp.MustCompile(`^tree ([0-9a-f]{40})$`)
	parentLineRegexp    = regexp.MustCompile(`^parent ([0-9a-f]{40})$`)
	authorLineRegexp    = regexp.MustCompile(`^author (.+) (\d+ [+-]\d{4})$`)
	committerLineRegexp = regexp.MustCompile(`^committer (.+) (\d+ [+-]\d{4})$`)
	commitDateRegexp    = regexp.MustCompile(`^([0-9]+) ([+-][0-9]{2})([0-9]{2})`)
)

// commitBuilder accumulates header fields while scanning a commit
// payload and validates mandatory presence on Build.
type commitBuilder struct {
	name      ident.Identifier
	tree      *ident.Identifier
	parent    *ident.Identifier
	author    *CommitUser
	committer *CommitUser
	message   *string
}

func (b *commitBuilder) build() (CommitRecord, error) {
	switch {
	case b.tree == nil:
		return CommitRecord{}, &MissingFieldError{Field: "tree"}
	case b.author == nil:
		return CommitRecord{}, &MissingFieldError{Field: "author"}
	case b.committer == nil:
		return CommitRecord{}, &MissingFieldError{Field: "committer"}
	case b.message == nil:
		return CommitRecord{}, &MissingFieldError{Field: "message"}
	}
	return CommitRecord{
		Name:      b.name,
		Tree:      *b.tree,
		Parent:    b.parent,
		Author:    *b.author,
		Committer: *b.committer,
		Message:   *b.message,
	}, nil
}

// parseCommitDate parses "<epoch-seconds> <+|-HHMM>" into a UTC instant
// with the given fixed offset preserved for display.
func parseCommitDate(s string) (time.Time, error) {
	m := commitDateRegexp.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, xerrors.Errorf("invalid commit date %q: %w", s, ErrInvalidCommit)
	}
	sec, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, xerrors.Errorf("invalid timestamp %q: %w", m[1], ErrInvalidCommit)
	}
	tzHours, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, xerrors.Errorf("invalid timezone hours %q: %w", m[2], ErrInvalidCommit)
	}
	tzMinutes, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, xerrors.Errorf("invalid timezone minutes %q: %w", m[3], ErrInvalidCommit)
	}
	sign := 1
	if m[2][0] == '-' {
		sign = -1
	}
	if tzHours < 0 {
		tzHours = -tzHours
	}
	offsetSeconds := sign * (tzHours*3600 + tzMinutes*60)
	loc := time.FixedZone("", offsetSeconds)
	return time.Unix(sec, 0).In(loc), nil
}

// DecodeCommit reads a commit payload from r: header lines, a blank
// line, then the message body to EOF. name is the identifier the
// commit was fetched by, and becomes CommitRecord.Name.
func DecodeCommit(r *bufio.Reader, name ident.Identifier) (CommitRecord, error) {
	b := &commitBuilder{name: name}

	for {
		line, err := readutil.ReadLine(r)
		if err != nil && err != io.EOF {
			return CommitRecord{}, xerrors.Errorf("could not read commit: %w", err)
		}
		if err == io.EOF && line == "" {
			return CommitRecord{}, xerrors.Errorf("commit ended before blank line: %w", ErrInvalidCommit)
		}

		if strings.TrimSpace(line) == "" {
			// Header region is done; the rest of the stream is the message.
			var msg strings.Builder
			for {
				chunk, rErr := readutil.ReadLine(r)
				if rErr == io.EOF && chunk == "" {
					break
				}
				msg.WriteString(chunk)
				if rErr != io.EOF {
					msg.WriteByte('\n')
				}
				if rErr == io.EOF {
					break
				}
			}
			message := strings.TrimSpace(msg.String())
			b.message = &message
			return b.build()
		}

		switch {
		case treeLineRegexp.MatchString(line):
			m := treeLineRegexp.FindStringSubmatch(line)
			id, idErr := ident.New(m[1])
			if idErr != nil {
				return CommitRecord{}, xerrors.Errorf("invalid tree id %q: %w", m[1], ErrInvalidCommit)
			}
			b.tree = &id
		case parentLineRegexp.MatchString(line):
			m := parentLineRegexp.FindStringSubmatch(line)
			id, idErr := ident.New(m[1])
			if idErr != nil {
				return CommitRecord{}, xerrors.Errorf("invalid parent id %q: %w", m[1], ErrInvalidCommit)
			}
			if b.parent == nil {
				b.parent = &id
			}
		case authorLineRegexp.MatchString(line):
			m := authorLineRegexp.FindStringSubmatch(line)
			date, dErr := parseCommitDate(m[2])
			if dErr != nil {
				return CommitRecord{}, dErr
			}
			b.author = &CommitUser{Name: m[1], Date: date}
		case committerLineRegexp.MatchString(line):
			m := committerLineRegexp.FindStringSubmatch(line)
			date, dErr := parseCommitDate(m[2])
			if dErr != nil {
				return CommitRecord{}, dErr
			}
			b.committer = &CommitUser{Name: m[1], Date: date}
		default:
			return CommitRecord{}, xerrors.Errorf("unexpected commit line %q: %w", line, ErrInvalidCommit)
		}

		if err == io.EOF {
			return CommitRecord{}, xerrors.Errorf("commit ended before blank line: %w", ErrInvalidCommit)
		}
	}
}
