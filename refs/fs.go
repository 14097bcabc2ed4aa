package refs

import (
	"sort"

	"github.com/loosegit/loosegit/config"
	"github.com/spf13/afero"
)

func readAll(cfg *config.Config, path string) ([]byte, error) {
	return afero.ReadFile(cfg.FS, path)
}

func readDirNames(cfg *config.Config, dir string) ([]string, error) {
	infos, err := afero.ReadDir(cfg.FS, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}
