package refs_test

import (
	"testing"

	"github.com/loosegit/loosegit/internal/testutil/repofixture"
	"github.com/loosegit/loosegit/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headID = "4ddb0025ef5914b51fb835495f5259a6d962df21"

func TestReadHEADSymbolic(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteBranch("main", headID)
	fx.WriteHEAD("ref: refs/heads/main\n")

	head, err := refs.ReadHEAD(fx.Cfg)
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/main", head.Branch)
	assert.Equal(t, headID, head.ID.String())
}

func TestReadHEADDetached(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteHEAD(headID + "\n")

	head, err := refs.ReadHEAD(fx.Cfg)
	require.NoError(t, err)
	assert.Empty(t, head.Branch)
	assert.Equal(t, headID, head.ID.String())
}

func TestReadHEADMissing(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	_, err := refs.ReadHEAD(fx.Cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, refs.ErrRefNotFound)
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteBranch("introduce-tests", headID)
	fx.WriteHEAD("ref: refs/heads/introduce-tests\n")

	name, ok, err := refs.CurrentBranch(fx.Cfg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "introduce-tests", name)
}

func TestCurrentBranchDetached(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteHEAD(headID + "\n")

	_, ok, err := refs.CurrentBranch(fx.Cfg)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListBranches(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteBranch("main", headID)
	fx.WriteBranch("introduce-tests", headID)

	names, err := refs.ListBranches(fx.Cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"introduce-tests", "main"}, names)
}

func TestResolveBranchMissing(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	_, err := refs.ResolveBranch(fx.Cfg, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, refs.ErrRefNotFound)
}
