package revision_test

import (
	"strings"
	"testing"

	"github.com/loosegit/loosegit/internal/testutil/repofixture"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/loosegit/loosegit/revision"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rootID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	childID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	treeID  = "cccccccccccccccccccccccccccccccccccccccc"
)

func commitChain(fx *repofixture.Fixture) {
	fx.WriteCommit(rootID, treeID, "", "root <r@x> 1 +0000", "root <r@x> 1 +0000", "root\n")
	fx.WriteCommit(childID, treeID, rootID, "child <c@x> 2 +0000", "child <c@x> 2 +0000", "child\n")
}

func TestResolveHEADSymbolic(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)
	fx.WriteBranch("main", childID)
	fx.WriteHEAD("ref: refs/heads/main\n")

	id, err := revision.Resolve(fx.Cfg, "HEAD", nil)
	require.NoError(t, err)
	assert.Equal(t, childID, id.String())
}

func TestResolveHEADDetached(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)
	fx.WriteHEAD(childID + "\n")

	id, err := revision.Resolve(fx.Cfg, "HEAD", nil)
	require.NoError(t, err)
	assert.Equal(t, childID, id.String())
}

func TestResolveFullHash(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := revision.Resolve(fx.Cfg, rootID, nil)
	require.NoError(t, err)
	assert.Equal(t, rootID, id.String())
}

func TestResolveAbbreviatedHash(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	id, err := revision.Resolve(fx.Cfg, rootID[:8], nil)
	require.NoError(t, err)
	assert.Equal(t, rootID, id.String())
}

func TestResolveAbbreviatedAmbiguous(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id1 := "aaaa" + strings.Repeat("1", 36)
	id2 := "aaaa" + strings.Repeat("2", 36)
	fx.WriteObject(id1, "commit", []byte("x"))
	fx.WriteObject(id2, "commit", []byte("x"))

	_, err := revision.Resolve(fx.Cfg, "aaaa", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, revision.ErrAmbiguousRevision)
}

func TestResolveAbbreviatedNoMatch(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	_, err := revision.Resolve(fx.Cfg, "deadbeef", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, revision.ErrInvalidRevision)
}

func TestResolveBranchName(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteBranch("main", childID)

	id, err := revision.Resolve(fx.Cfg, "main", nil)
	require.NoError(t, err)
	assert.Equal(t, childID, id.String())
}

func TestResolveBranchMissing(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	_, err := revision.Resolve(fx.Cfg, "nope", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, revision.ErrInvalidRevision)
}

func TestResolveParentSuffix(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	id, err := revision.Resolve(fx.Cfg, childID+"^", nil)
	require.NoError(t, err)
	assert.Equal(t, rootID, id.String())
}

func TestResolveParentSuffixNoParent(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	_, err := revision.Resolve(fx.Cfg, rootID+"^", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, revision.ErrInvalidRevision)
}

func TestResolveAncestorSuffix(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	id, err := revision.Resolve(fx.Cfg, childID+"~1", nil)
	require.NoError(t, err)
	assert.Equal(t, rootID, id.String())
}

func TestResolveAncestorSuffixZero(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	id, err := revision.Resolve(fx.Cfg, childID+"~0", nil)
	require.NoError(t, err)
	assert.Equal(t, childID, id.String())
}

func TestResolveAncestorSuffixTooFar(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)

	_, err := revision.Resolve(fx.Cfg, childID+"~2", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, revision.ErrInvalidRevision)
}

func TestResolveTracesSteps(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	commitChain(fx)
	fx.WriteBranch("main", childID)

	tr := tracelog.New(true)
	hook := &test.Hook{}
	tr.AddHook(hook)

	_, err := revision.Resolve(fx.Cfg, "main", tr)
	require.NoError(t, err)

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, "resolving branch name", hook.LastEntry().Message)
}
