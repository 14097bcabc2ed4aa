package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

var defaultLoadOption = ini.LoadOptions{
	SkipUnrecognizableLines: true,
}

// defaultConfig generates the default config used when none of the
// system, global, or local config files exist.
func defaultConfig() (*ini.File, error) {
	cfg := ini.Empty(defaultLoadOption)

	core := cfg.Section("core")
	coreCfg := map[string]string{
		"repositoryformatversion": "0",
		"filemode":                "true",
		"logallrefupdates":        "true",
		"ignorecase":              "true",
		"precomposeunicode":       "true",
	}
	for k, v := range coreCfg {
		if _, err := core.NewKey(k, v); err != nil {
			return nil, xerrors.Errorf("could not set core.%s: %w", k, err)
		}
	}

	return cfg, nil
}

// FileAggregate is the merged, read-only view of every config file
// affecting a repository: system, global, and local, in that precedence
// order.
type FileAggregate struct {
	cfg    *Config
	global *ini.File
	local  *ini.File
}

// RepoFormatVersion returns core.repositoryformatversion.
func (cfg *FileAggregate) RepoFormatVersion() (version int, ok bool) {
	source := cfg.global
	if cfg.local.Section("core").HasKey("repositoryformatversion") {
		source = cfg.local
	}

	v, err := source.Section("core").Key("repositoryformatversion").Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

// WorkTree returns core.worktree.
func (cfg *FileAggregate) WorkTree() (workTree string, ok bool) {
	source := cfg.global
	if cfg.local.Section("core").HasKey("worktree") {
		source = cfg.local
	}

	v := source.Section("core").Key("worktree").String()
	return v, v != ""
}

// IsBare returns core.bare.
func (cfg *FileAggregate) IsBare() (isBare, ok bool) {
	source := cfg.global
	if cfg.local.Section("core").HasKey("bare") {
		source = cfg.local
	}

	v, err := source.Section("core").Key("bare").Bool()
	if err != nil {
		return false, false
	}
	return v, true
}

// Section returns the merged value of key in section, local taking
// precedence over global. Used by the pager to look up core.pager.
func (cfg *FileAggregate) Section(section, key string) (value string, ok bool) {
	if cfg.local.Section(section).HasKey(key) {
		return cfg.local.Section(section).Key(key).String(), true
	}
	if cfg.global.Section(section).HasKey(key) {
		return cfg.global.Section(section).Key(key).String(), true
	}
	return "", false
}

// All returns every "section.key=value" pair across the merged local and
// global config files, local entries winning on conflicts.
func (cfg *FileAggregate) All() map[string]string {
	out := map[string]string{}
	for _, f := range []*ini.File{cfg.global, cfg.local} {
		for _, sec := range f.Sections() {
			if sec.Name() == ini.DefaultSection {
				continue
			}
			for _, key := range sec.Keys() {
				out[sec.Name()+"."+key.Name()] = key.String()
			}
		}
	}
	return out
}

// NewFileAggregate loads every available config file and returns the
// merged read-only accessor.
func NewFileAggregate(e *Env, cfg *Config) (confFile *FileAggregate, err error) {
	confFile = &FileAggregate{
		cfg: cfg,
	}
	configPaths := getPaths(e, cfg)

	// afero doesn't let ini open files by path directly, so we open them
	// ourselves and hand ini the file handles.
	files := make([]interface{}, 0, len(configPaths))
	for _, p := range configPaths {
		if _, sErr := cfg.FS.Stat(p); sErr != nil {
			if errors.Is(sErr, os.ErrNotExist) {
				continue
			}
			err = xerrors.Errorf("could not check file %s: %w", p, sErr)
			break
		}

		f, fErr := cfg.FS.Open(p)
		if fErr != nil {
			err = xerrors.Errorf("could not open file %s: %w", p, fErr)
			break
		}
		files = append(files, f)
	}
	defer func() {
		for _, f := range files {
			f.(io.ReadCloser).Close() //nolint:errcheck
		}
	}()
	if err != nil {
		return nil, err
	}

	confFile.global = ini.Empty(defaultLoadOption)
	switch len(files) {
	case 0:
		if confFile.local, err = defaultConfig(); err != nil {
			return nil, xerrors.Errorf("could not create default local config: %w", err)
		}
	default:
		if len(files) > 1 {
			confFile.global, err = ini.LoadSources(defaultLoadOption, files[0], files[1:len(files)-1]...)
			if err != nil {
				return nil, xerrors.Errorf("could not aggregate config file: %w", err)
			}
		}
		confFile.local, err = ini.LoadSources(defaultLoadOption, files[len(files)-1])
		if err != nil {
			return nil, xerrors.Errorf("could not load config file: %w", err)
		}
	}
	return confFile, nil
}

func appendIfValid(array *[]string, envVar string, p ...string) {
	if envVar != "" {
		*array = append(*array, filepath.Join(envVar, filepath.Join(p...)))
	}
}

func getPaths(e *Env, cfg *Config) []string {
	configPaths := []string{}

	if !cfg.SkipSystemConfig && cfg.Prefix != "" {
		configPaths = append(configPaths, filepath.Join(cfg.Prefix, "etc", "gitconfig"))
	}

	switch runtime.GOOS {
	case "windows":
		if !cfg.SkipSystemConfig && cfg.Prefix == "" {
			appendIfValid(&configPaths, e.Get("ALLUSERSPROFILE"), "Application Data", "Git", "config")
			appendIfValid(&configPaths, e.Get("ProgramFiles(x86)"), "Git", "etc", "gitconfig")
			appendIfValid(&configPaths, e.Get("ProgramFiles"), "Git", "mingw64", "etc", "gitconfig")
		}
		appendIfValid(&configPaths, e.Get("USERPROFILE"), ".gitconfig")
	default:
		if !cfg.SkipSystemConfig && cfg.Prefix == "" {
			configPaths = append(configPaths,
				"/etc/gitconfig",
				"/usr/local/etc/gitconfig",
				"/opt/homebrew/etc/gitconfig",
			)
		}
		if e.Get("XDG_CONFIG_HOME") != "" {
			configPaths = append(configPaths, filepath.Join(e.Get("XDG_CONFIG_HOME"), "git", ".gitconfig"))
		} else {
			appendIfValid(&configPaths, e.Get("HOME"), ".config", ".git", ".gitconfig")
		}
	}
	appendIfValid(&configPaths, e.Get("HOME"), ".gitconfig")
	configPaths = append(configPaths, cfg.LocalConfig)
	return configPaths
}
