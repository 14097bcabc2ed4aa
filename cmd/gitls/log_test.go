package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loosegit/loosegit/internal/testutil/repofixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const childID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func TestLogCmdWalksFirstParent(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteCommit(rootID, treeID, "", "root <r@x> 1 +0000", "root <r@x> 1 +0000", "root\n")
	fx.WriteCommit(childID, treeID, rootID, "child <c@x> 2 +0000", "child <c@x> 2 +0000", "child\n")
	fx.WriteHEAD(childID + "\n")

	var buf bytes.Buffer
	err := logCmd(&buf, testFlags(fx), "HEAD")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "commit "+childID))
	assert.True(t, strings.Contains(out, "commit "+rootID))
	assert.True(t, strings.Index(out, childID) < strings.Index(out, rootID))
}

func TestLogCmdIndentsEveryMessageLine(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	fx.WriteCommit(rootID, treeID, "", "root <r@x> 1 +0000", "root <r@x> 1 +0000", "summary\n\nbody line one\nbody line two\n")
	fx.WriteHEAD(rootID + "\n")

	var buf bytes.Buffer
	err := logCmd(&buf, testFlags(fx), "HEAD")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "    summary\n")
	assert.Contains(t, out, "    body line one\n")
	assert.Contains(t, out, "    body line two\n")
}
