// Package repo ties the config, store, refs, revision, and index
// packages together into the single entry point commands build
// against.
package repo

import (
	"errors"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/index"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/loosegit/loosegit/object"
	"github.com/loosegit/loosegit/refs"
	"github.com/loosegit/loosegit/revision"
	"github.com/loosegit/loosegit/store"
	"golang.org/x/xerrors"
)

// ErrNotACommit is returned when an operation that requires a commit
// object is given something else.
var ErrNotACommit = errors.New("object is not a commit")

// defaultCacheSize bounds the repository's decoded-object LRU. Zero
// would disable caching entirely.
const defaultCacheSize = 256

// Repository is a read-only handle on a repository's object database,
// refs, and index, resolved once from a *config.Config.
type Repository struct {
	cfg    *config.Config
	store  *store.Store
	tracer *tracelog.Tracer
}

// Open returns a Repository backed by cfg. tracer may be nil; when
// non-nil and enabled, revision resolution logs its steps through it.
func Open(cfg *config.Config, tracer *tracelog.Tracer) *Repository {
	return &Repository{
		cfg:    cfg,
		store:  store.New(cfg, defaultCacheSize, tracer),
		tracer: tracer,
	}
}

// Config returns the resolved configuration the repository was opened
// with.
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// Resolve evaluates a revision expression against this repository.
func (r *Repository) Resolve(rev string) (ident.Identifier, error) {
	return revision.Resolve(r.cfg, rev, r.tracer)
}

// Object resolves rev and reads the object it names.
func (r *Repository) Object(rev string) (*object.Object, error) {
	id, err := r.Resolve(rev)
	if err != nil {
		return nil, err
	}
	return r.store.ReadObject(id)
}

// Commit resolves rev and reads it as a commit, failing if it names
// something else.
func (r *Repository) Commit(rev string) (object.CommitRecord, error) {
	o, err := r.Object(rev)
	if err != nil {
		return object.CommitRecord{}, err
	}
	c, ok := o.AsCommit()
	if !ok {
		return object.CommitRecord{}, xerrors.Errorf("%s: %w", rev, ErrNotACommit)
	}
	return c, nil
}

// Exists reports whether id names an object in the database.
func (r *Repository) Exists(id ident.Identifier) (bool, error) {
	return r.store.Exists(id)
}

// Log walks the first-parent chain starting at rev, calling visit for
// each commit in order from newest to oldest. Walking stops early if
// visit returns false.
func (r *Repository) Log(rev string, visit func(object.CommitRecord) bool) error {
	id, err := r.Resolve(rev)
	if err != nil {
		return err
	}

	for {
		o, err := r.store.ReadObject(id)
		if err != nil {
			return err
		}
		c, ok := o.AsCommit()
		if !ok {
			return xerrors.Errorf("%s: %w", id, ErrNotACommit)
		}
		if !visit(c) {
			return nil
		}
		if c.Parent == nil {
			return nil
		}
		id = *c.Parent
	}
}

// HEAD returns the decoded state of .git/HEAD.
func (r *Repository) HEAD() (refs.HEAD, error) {
	return refs.ReadHEAD(r.cfg)
}

// CurrentBranch returns the short branch name HEAD points to, and
// false if HEAD is detached.
func (r *Repository) CurrentBranch() (string, bool, error) {
	return refs.CurrentBranch(r.cfg)
}

// Branches returns every local branch name, sorted.
func (r *Repository) Branches() ([]string, error) {
	return refs.ListBranches(r.cfg)
}

// Index reads and decodes .git/index.
func (r *Repository) Index() (*index.Index, error) {
	return index.Read(r.cfg)
}

// Untracked returns every working-tree file not present in the index.
func (r *Repository) Untracked() ([]string, error) {
	return index.Untracked(r.cfg)
}
