package index

import (
	"os"
	"path/filepath"

	"github.com/loosegit/loosegit/config"
	"github.com/spf13/afero"
)

// Untracked returns every regular file under cfg.WorkTreePath that is
// not present in the index, as canonicalized absolute paths. The walk
// skips any directory named ".git" and silently ignores individual
// entries it cannot stat.
func Untracked(cfg *config.Config) ([]string, error) {
	idx, err := Read(cfg)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]struct{}, len(idx.Entries))
	for _, e := range idx.Entries {
		tracked[e.Path] = struct{}{}
	}

	var untracked []string
	walkErr := afero.Walk(cfg.FS, cfg.WorkTreePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Individual entries that can't be stat'd are skipped, not fatal.
			return nil
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		abs, cErr := canonicalize(cfg.FS, cfg.WorkTreePath, path)
		if cErr != nil {
			return nil
		}
		if _, ok := tracked[abs]; !ok {
			untracked = append(untracked, abs)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return untracked, nil
}
