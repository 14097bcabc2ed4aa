// Package store locates and decodes loose objects from the on-disk
// object database: path construction, zlib decompression, and header
// parsing, handing the decompressed payload off to package object for
// type-specific decoding.
package store

import (
	"path/filepath"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/ident"
)

// ObjectPath returns the absolute path to the loose object named by id,
// under cfg's object directory: <objects>/<first-2-hex>/<last-38-hex>.
// It performs no filesystem existence check.
func ObjectPath(cfg *config.Config, id ident.Identifier) string {
	return filepath.Join(cfg.ObjectDirPath, id.Dir(), id.File())
}
