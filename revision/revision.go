// Package revision resolves git revision expressions (HEAD, full and
// abbreviated hashes, "^" and "~N" ancestor suffixes, and branch names)
// to object identifiers. See gitrevisions(7) for the full grammar, of
// which this package implements a subset.
package revision

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/loosegit/loosegit/refs"
	"github.com/loosegit/loosegit/store"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var ancestorRegexp = regexp.MustCompile(`^(.+)~(\d+)$`)

// Resolve evaluates rev against cfg and returns the identifier it names.
// tracer may be nil; when non-nil and enabled, each grammar branch taken
// logs a trace step.
//
// Evaluation order, longest-match first: "HEAD", a "^" suffix, a "~N"
// suffix, a full 40-hex identifier, an abbreviated hash (4-39 hex
// chars, resolved by scanning the matching loose-object directory),
// and finally a branch name under refs/heads.
func Resolve(cfg *config.Config, rev string, tracer *tracelog.Tracer) (ident.Identifier, error) {
	switch {
	case rev == "HEAD":
		tracer.Step("resolving HEAD", map[string]interface{}{"rev": rev})
		head, err := refs.ReadHEAD(cfg)
		if err != nil {
			return ident.Identifier{}, xerrors.Errorf("HEAD: %w: %v", ErrInvalidRevision, err)
		}
		return head.ID, nil

	case strings.HasSuffix(rev, "^"):
		tracer.Step("resolving parent suffix", map[string]interface{}{"rev": rev})
		return parentOfCommit(cfg, rev[:len(rev)-1], tracer)

	case ancestorRegexp.MatchString(rev):
		m := ancestorRegexp.FindStringSubmatch(rev)
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return ident.Identifier{}, xerrors.Errorf("%s: %w", rev, ErrInvalidRevision)
		}
		tracer.Step("resolving ancestor suffix", map[string]interface{}{"rev": rev, "base": m[1], "n": n})
		id, err := Resolve(cfg, m[1], tracer)
		if err != nil {
			return ident.Identifier{}, err
		}
		for i := 0; i < n; i++ {
			id, err = parentOf(cfg, id, tracer)
			if err != nil {
				return ident.Identifier{}, err
			}
		}
		return id, nil

	case ident.IsFullHex(rev):
		tracer.Step("resolving full hash", map[string]interface{}{"rev": rev})
		return ident.New(rev)

	case ident.AbbreviatedRegexp.MatchString(rev):
		tracer.Step("resolving abbreviated hash", map[string]interface{}{"rev": rev})
		return resolveAbbreviated(cfg, rev, tracer)

	default:
		tracer.Step("resolving branch name", map[string]interface{}{"rev": rev})
		id, err := refs.ResolveBranch(cfg, rev)
		if err != nil {
			return ident.Identifier{}, xerrors.Errorf("%s: %w", rev, ErrInvalidRevision)
		}
		return id, nil
	}
}

// parentOfCommit resolves child, fetches its commit, and returns its
// first parent.
func parentOfCommit(cfg *config.Config, child string, tracer *tracelog.Tracer) (ident.Identifier, error) {
	id, err := Resolve(cfg, child, tracer)
	if err != nil {
		return ident.Identifier{}, err
	}
	return parentOf(cfg, id, tracer)
}

// parentOf returns the first parent of the commit named by id.
func parentOf(cfg *config.Config, id ident.Identifier, tracer *tracelog.Tracer) (ident.Identifier, error) {
	tracer.Step("reading commit for parent lookup", map[string]interface{}{"id": id.String()})
	s := store.New(cfg, 0, tracer)
	obj, err := s.ReadObject(id)
	if err != nil {
		return ident.Identifier{}, xerrors.Errorf("%s: %w", id, ErrInvalidRevision)
	}
	commit, ok := obj.AsCommit()
	if !ok {
		return ident.Identifier{}, xerrors.Errorf("%s is not a commit: %w", id, ErrInvalidRevision)
	}
	if commit.Parent == nil {
		return ident.Identifier{}, xerrors.Errorf("%s has no parent: %w", id, ErrInvalidRevision)
	}
	return *commit.Parent, nil
}

// resolveAbbreviated expands a 4-39 hex prefix into a full identifier
// by scanning its loose-object directory.
func resolveAbbreviated(cfg *config.Config, rev string, tracer *tracelog.Tracer) (ident.Identifier, error) {
	dir := rev[:2]
	prefix := rev[2:]

	objDir := filepath.Join(cfg.ObjectDirPath, dir)
	infos, err := afero.ReadDir(cfg.FS, objDir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) || os.IsNotExist(err) {
			return ident.Identifier{}, xerrors.Errorf("%s: %w", rev, ErrInvalidRevision)
		}
		return ident.Identifier{}, xerrors.Errorf("could not list %s: %w", objDir, err)
	}

	var matches []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if strings.HasPrefix(info.Name(), prefix) {
			matches = append(matches, info.Name())
		}
	}

	tracer.Step("scanned object directory for abbreviation", map[string]interface{}{
		"dir": objDir, "prefix": prefix, "matches": len(matches),
	})

	switch len(matches) {
	case 0:
		return ident.Identifier{}, xerrors.Errorf("%s: %w", rev, ErrInvalidRevision)
	case 1:
		return ident.New(dir + matches[0])
	default:
		sort.Strings(matches)
		return ident.Identifier{}, xerrors.Errorf("%s matches %d objects: %w", rev, len(matches), ErrAmbiguousRevision)
	}
}
