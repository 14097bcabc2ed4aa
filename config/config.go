// Package config resolves a repository's on-disk layout and merged
// configuration from the process environment and the .git/config
// hierarchy, the way the rest of the core consumes it: as a single
// resolved *Config, never by reading the environment directly.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/loosegit/loosegit/internal/gitpath"
	"github.com/loosegit/loosegit/internal/pathutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrNoWorkTreeAlone is returned when a work tree path is given without
// a git dir.
var ErrNoWorkTreeAlone = errors.New("cannot specify a work tree without also specifying a git dir")

// Config is the resolved location of a repository's moving parts: the
// object database, refs, and merged configuration files. Every package
// under loosegit depends only on a *Config, never on the environment.
type Config struct {
	// FS is the filesystem implementation used to look for files and
	// directories. Defaults to the real filesystem.
	FS afero.Fs

	// fromFiles holds the merged view of the on-disk config files.
	fromFiles *FileAggregate

	// GitDirPath is the path to the .git directory. Maps to $GIT_DIR.
	GitDirPath string
	// WorkTreePath is the path to the working tree. Maps to $GIT_WORK_TREE.
	WorkTreePath string
	// ObjectDirPath is the path to .git/objects. Maps to $GIT_OBJECT_DIRECTORY.
	ObjectDirPath string
	// LocalConfig is the path to the repo-local config file. Maps to $GIT_CONFIG.
	LocalConfig string
	// Prefix is the base used to find the system configuration file. Maps to $PREFIX.
	Prefix string
	// SkipSystemConfig disables loading of the system config file. Maps to
	// $GIT_CONFIG_NOSYSTEM.
	SkipSystemConfig bool
}

// LoadOptions overrides the defaults derived from the environment.
type LoadOptions struct {
	// FS is the filesystem implementation to use. Defaults to the real
	// filesystem.
	FS afero.Fs
	// WorkingDirectory is the directory resolution is relative to.
	// Defaults to the process's current working directory.
	WorkingDirectory string
	// WorkTreePath overrides $GIT_WORK_TREE when set.
	WorkTreePath string
	// GitDirPath overrides $GIT_DIR when set.
	GitDirPath string
	// IsBare marks the repository as having no working tree.
	IsBare bool
	// SkipGitDirLookUp disables walking up from WorkingDirectory looking
	// for a .git directory when GitDirPath/$GIT_DIR are unset.
	SkipGitDirLookUp bool
}

// Load resolves a Config from the environment and the given overrides.
func Load(e *Env, opts LoadOptions) (*Config, error) {
	skipSystem := false
	switch strings.ToLower(e.Get("GIT_CONFIG_NOSYSTEM")) {
	case "yes", "1", "true":
		skipSystem = true
	}

	cfg := &Config{
		GitDirPath:       e.Get("GIT_DIR"),
		WorkTreePath:     e.Get("GIT_WORK_TREE"),
		ObjectDirPath:    e.Get("GIT_OBJECT_DIRECTORY"),
		SkipSystemConfig: skipSystem,
		LocalConfig:      e.Get("GIT_CONFIG"),
		Prefix:           e.Get("PREFIX"),
	}

	if err := resolve(e, cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSkipEnv resolves a Config using only opts, ignoring the environment.
func LoadSkipEnv(opts LoadOptions) (*Config, error) {
	return Load(NewEnvFromKVList(nil), opts)
}

func resolve(e *Env, cfg *Config, opts LoadOptions) (err error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	cfg.FS = opts.FS

	wd, err := os.Getwd()
	if err != nil {
		return xerrors.Errorf("could not get the current directory: %w", err)
	}
	if opts.WorkingDirectory == "" {
		opts.WorkingDirectory = wd
	}
	if !filepath.IsAbs(opts.WorkingDirectory) {
		opts.WorkingDirectory = filepath.Join(wd, opts.WorkingDirectory)
	}

	if opts.GitDirPath == "" && cfg.GitDirPath == "" && (opts.WorkTreePath != "" || cfg.WorkTreePath != "") {
		return ErrNoWorkTreeAlone
	}

	if opts.GitDirPath != "" {
		cfg.GitDirPath = opts.GitDirPath
	}
	guessedWorkingTree := opts.WorkingDirectory
	switch cfg.GitDirPath {
	default:
		if !filepath.IsAbs(cfg.GitDirPath) {
			cfg.GitDirPath = filepath.Join(opts.WorkingDirectory, cfg.GitDirPath)
		}
	case "":
		if !opts.SkipGitDirLookUp {
			guessedWorkingTree, err = pathutil.WorkingTreeFromPath(opts.WorkingDirectory)
			if err != nil {
				return xerrors.Errorf("could not find working tree: %w", err)
			}
		}
		cfg.GitDirPath = filepath.Join(guessedWorkingTree, gitpath.DotGitPath)
	}

	if cfg.LocalConfig == "" {
		cfg.LocalConfig = filepath.Join(cfg.GitDirPath, gitpath.ConfigPath)
	}
	if !filepath.IsAbs(cfg.LocalConfig) {
		cfg.LocalConfig = filepath.Join(opts.WorkingDirectory, cfg.LocalConfig)
	}

	if cfg.ObjectDirPath == "" {
		cfg.ObjectDirPath = filepath.Join(cfg.GitDirPath, gitpath.ObjectsPath)
	}
	if !filepath.IsAbs(cfg.ObjectDirPath) {
		cfg.ObjectDirPath = filepath.Join(opts.WorkingDirectory, cfg.ObjectDirPath)
	}

	cfg.fromFiles, err = NewFileAggregate(e, cfg)
	if err != nil {
		return xerrors.Errorf("could not load config files: %w", err)
	}

	if path, ok := cfg.fromFiles.WorkTree(); ok {
		cfg.WorkTreePath = path
	}
	if opts.WorkTreePath != "" {
		cfg.WorkTreePath = opts.WorkTreePath
	}
	if cfg.WorkTreePath == "" && !opts.IsBare {
		cfg.WorkTreePath = guessedWorkingTree
	}
	if cfg.WorkTreePath != "" && !filepath.IsAbs(cfg.WorkTreePath) {
		cfg.WorkTreePath = filepath.Join(opts.WorkingDirectory, cfg.WorkTreePath)
	}

	return nil
}

// Merged returns the merged view of the repository's configuration files.
func (c *Config) Merged() *FileAggregate {
	return c.fromFiles
}
