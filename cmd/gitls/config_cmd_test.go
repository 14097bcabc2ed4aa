package main

import (
	"bytes"
	"testing"

	"github.com/loosegit/loosegit/internal/testutil/repofixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmdListsDefaults(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)

	var buf bytes.Buffer
	err := configCmd(&buf, testFlags(fx))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "core.repositoryformatversion=0")
}
