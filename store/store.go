package store

import (
	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/loosegit/loosegit/object"
)

// Store reads and decodes loose objects, with an optional in-memory LRU
// cache of previously decoded objects keyed by identifier.
type Store struct {
	cfg    *config.Config
	cache  *objectCache
	tracer *tracelog.Tracer
}

// New returns a Store backed by cfg. If cacheSize > 0, decoded objects
// are cached; pass 0 to disable caching. tracer may be nil.
func New(cfg *config.Config, cacheSize int, tracer *tracelog.Tracer) *Store {
	s := &Store{cfg: cfg, tracer: tracer}
	if cacheSize > 0 {
		s.cache = newObjectCache(cacheSize)
	}
	return s
}

// ReadHeader opens the loose object named by id and returns only its
// decoded header, without materializing the typed body.
func (s *Store) ReadHeader(id ident.Identifier) (object.Header, error) {
	r, closeFn, err := OpenLoose(s.cfg, id)
	if err != nil {
		return object.Header{}, err
	}
	defer closeFn() //nolint:errcheck

	return DecodeHeader(r)
}

// ReadObject opens, decompresses, and decodes the loose object named by
// id. Blob and Tree objects are returned header-only; their body
// parsing is unimplemented. Commit objects are fully decoded.
func (s *Store) ReadObject(id ident.Identifier) (*object.Object, error) {
	if s.cache != nil {
		if o, ok := s.cache.get(id); ok {
			s.tracer.Step("object cache hit", map[string]interface{}{"id": id.String()})
			return o, nil
		}
	}

	s.tracer.Step("reading loose object", map[string]interface{}{"id": id.String()})
	r, closeFn, err := OpenLoose(s.cfg, id)
	if err != nil {
		return nil, err
	}
	defer closeFn() //nolint:errcheck

	header, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}

	o := &object.Object{ID: id, Header: header}
	if header.Type == object.TypeCommit {
		commit, cErr := object.DecodeCommit(r, id)
		if cErr != nil {
			return nil, cErr
		}
		o.Commit = &commit
	}
	// Blob and Tree are returned header-only: their body is not parsed
	// by this core.

	if s.cache != nil {
		s.cache.add(id, o)
	}
	return o, nil
}

// Exists reports whether a loose object exists at id's path, without
// decoding it.
func (s *Store) Exists(id ident.Identifier) (bool, error) {
	_, err := s.cfg.FS.Stat(ObjectPath(s.cfg, id))
	if err == nil {
		return true, nil
	}
	return false, nil
}
