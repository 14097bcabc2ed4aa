// Package repofixture builds an in-memory repository on an
// afero.MemMapFs for tests, with objects and refs constructed
// directly in process rather than unpacked from a fixture archive.
package repofixture

import (
	"bytes"
	"compress/zlib"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/loosegit/loosegit/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Fixture is an in-memory repository rooted at Dir, backed by cfg.FS.
type Fixture struct {
	t   *testing.T
	Cfg *config.Config
	Dir string
}

// New creates an empty repository at /repo on a fresh MemMapFs, with
// the .git/objects and .git/refs/heads directories present.
func New(t *testing.T) *Fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	dir := "/repo"
	gitDir := filepath.Join(dir, ".git")

	require.NoError(t, fs.MkdirAll(filepath.Join(gitDir, "objects"), 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))

	cfg := &config.Config{
		FS:            fs,
		GitDirPath:    gitDir,
		WorkTreePath:  dir,
		ObjectDirPath: filepath.Join(gitDir, "objects"),
		LocalConfig:   filepath.Join(gitDir, "config"),
	}

	return &Fixture{t: t, Cfg: cfg, Dir: dir}
}

// WriteObject zlib-compresses `<typ> SP <len(payload)> NUL <payload>`
// and stores it as a loose object named id (40-hex).
func (f *Fixture) WriteObject(id, typ string, payload []byte) {
	f.t.Helper()

	var raw bytes.Buffer
	raw.WriteString(typ)
	raw.WriteByte(' ')
	raw.WriteString(strconv.Itoa(len(payload)))
	raw.WriteByte(0)
	raw.Write(payload)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err := zw.Write(raw.Bytes())
	require.NoError(f.t, err)
	require.NoError(f.t, zw.Close())

	dir := filepath.Join(f.Cfg.ObjectDirPath, id[:2])
	require.NoError(f.t, f.Cfg.FS.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, id[2:])
	require.NoError(f.t, afero.WriteFile(f.Cfg.FS, path, compressed.Bytes(), 0o444))
}

// WriteCommit builds the header-lines/blank-line/message grammar from
// its arguments and stores it as a commit object named id.
func (f *Fixture) WriteCommit(id, tree, parent, authorLine, committerLine, message string) {
	f.t.Helper()

	var body bytes.Buffer
	body.WriteString("tree " + tree + "\n")
	if parent != "" {
		body.WriteString("parent " + parent + "\n")
	}
	body.WriteString("author " + authorLine + "\n")
	body.WriteString("committer " + committerLine + "\n")
	body.WriteString("\n")
	body.WriteString(message)

	f.WriteObject(id, "commit", body.Bytes())
}

// WriteHEAD writes .git/HEAD with the given raw contents (either
// "ref: refs/heads/<branch>\n" or a bare identifier).
func (f *Fixture) WriteHEAD(contents string) {
	f.t.Helper()
	path := filepath.Join(f.Cfg.GitDirPath, "HEAD")
	require.NoError(f.t, afero.WriteFile(f.Cfg.FS, path, []byte(contents), 0o644))
}

// WriteBranch writes .git/refs/heads/<name> with the given identifier.
func (f *Fixture) WriteBranch(name, id string) {
	f.t.Helper()
	path := filepath.Join(f.Cfg.GitDirPath, "refs", "heads", name)
	require.NoError(f.t, f.Cfg.FS.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, afero.WriteFile(f.Cfg.FS, path, []byte(id+"\n"), 0o644))
}

// WriteIndex writes raw bytes as .git/index.
func (f *Fixture) WriteIndex(raw []byte) {
	f.t.Helper()
	path := filepath.Join(f.Cfg.GitDirPath, "index")
	require.NoError(f.t, afero.WriteFile(f.Cfg.FS, path, raw, 0o644))
}

// WriteWorkingFile writes a file in the working tree (not the .git dir).
func (f *Fixture) WriteWorkingFile(relPath string, contents []byte) {
	f.t.Helper()
	path := filepath.Join(f.Dir, relPath)
	require.NoError(f.t, f.Cfg.FS.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, afero.WriteFile(f.Cfg.FS, path, contents, 0o644))
}
