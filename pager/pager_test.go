package pager_test

import (
	"testing"

	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/pager"
	"github.com/stretchr/testify/assert"
)

func TestCommandPrefersGitPager(t *testing.T) {
	t.Parallel()

	e := config.NewEnvFromKVList([]string{"GIT_PAGER=most", "PAGER=less"})
	assert.Equal(t, "most", pager.Command(e, nil))
}

func TestCommandFallsBackToPager(t *testing.T) {
	t.Parallel()

	e := config.NewEnvFromKVList([]string{"PAGER=more"})
	assert.Equal(t, "more", pager.Command(e, nil))
}

func TestCommandDefaultsToLess(t *testing.T) {
	t.Parallel()

	e := config.NewEnvFromKVList(nil)
	assert.Equal(t, "less -R", pager.Command(e, nil))
}

func TestNewWithoutPagingSpawnsNothing(t *testing.T) {
	t.Parallel()

	p, err := pager.New(nil, false, "less")
	assert := assert.New(t)
	assert.NoError(err)
	assert.NoError(p.Close())
}
