package object_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "4ddb0025ef5914b51fb835495f5259a6d962df21"

func mustID(t *testing.T, s string) ident.Identifier {
	t.Helper()
	id, err := ident.New(s)
	require.NoError(t, err)
	return id
}

func TestDecodeCommit(t *testing.T) {
	t.Parallel()

	t.Run("root commit with no parent", func(t *testing.T) {
		t.Parallel()

		payload := "tree " + strings.Repeat("a", 40) + "\n" +
			"author John Doe <john@example.com> 1566115917 -0700\n" +
			"committer John Doe <john@example.com> 1566115917 -0700\n" +
			"\n" +
			"initial commit\n"

		r := bufio.NewReader(strings.NewReader(payload))
		c, err := object.DecodeCommit(r, mustID(t, testID))
		require.NoError(t, err)

		assert.Equal(t, testID, c.Name.String())
		assert.Nil(t, c.Parent)
		assert.Equal(t, "John Doe <john@example.com>", c.Author.Name)
		assert.Equal(t, int64(1566115917), c.Author.Date.Unix())
		assert.Equal(t, "initial commit", c.Message)
	})

	t.Run("commit with a parent", func(t *testing.T) {
		t.Parallel()

		parent := strings.Repeat("b", 40)
		payload := "tree " + strings.Repeat("a", 40) + "\n" +
			"parent " + parent + "\n" +
			"author Jane Doe <jane@example.com> 1566005917 +0100\n" +
			"committer Jane Doe <jane@example.com> 1566005917 +0100\n" +
			"\n" +
			"fix bug\n"

		r := bufio.NewReader(strings.NewReader(payload))
		c, err := object.DecodeCommit(r, mustID(t, testID))
		require.NoError(t, err)
		require.NotNil(t, c.Parent)
		assert.Equal(t, parent, c.Parent.String())
	})

	t.Run("multiple parents: only the first is captured", func(t *testing.T) {
		t.Parallel()

		p1 := strings.Repeat("b", 40)
		p2 := strings.Repeat("c", 40)
		payload := "tree " + strings.Repeat("a", 40) + "\n" +
			"parent " + p1 + "\n" +
			"parent " + p2 + "\n" +
			"author Jane Doe <jane@example.com> 1566005917 +0100\n" +
			"committer Jane Doe <jane@example.com> 1566005917 +0100\n" +
			"\n" +
			"merge\n"

		r := bufio.NewReader(strings.NewReader(payload))
		c, err := object.DecodeCommit(r, mustID(t, testID))
		require.NoError(t, err)
		require.NotNil(t, c.Parent)
		assert.Equal(t, p1, c.Parent.String())
	})

	t.Run("message that is a single newline is empty", func(t *testing.T) {
		t.Parallel()

		payload := "tree " + strings.Repeat("a", 40) + "\n" +
			"author John Doe <john@example.com> 1566115917 -0700\n" +
			"committer John Doe <john@example.com> 1566115917 -0700\n" +
			"\n" +
			"\n"

		r := bufio.NewReader(strings.NewReader(payload))
		c, err := object.DecodeCommit(r, mustID(t, testID))
		require.NoError(t, err)
		assert.Empty(t, c.Message)
	})

	t.Run("missing tree is an error naming the field", func(t *testing.T) {
		t.Parallel()

		payload := "author John Doe <john@example.com> 1566115917 -0700\n" +
			"committer John Doe <john@example.com> 1566115917 -0700\n" +
			"\n" +
			"oops\n"

		r := bufio.NewReader(strings.NewReader(payload))
		_, err := object.DecodeCommit(r, mustID(t, testID))
		require.Error(t, err)
		var mf *object.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "tree", mf.Field)
	})

	t.Run("no blank line before EOF is an error", func(t *testing.T) {
		t.Parallel()

		payload := "tree " + strings.Repeat("a", 40) + "\n"
		r := bufio.NewReader(strings.NewReader(payload))
		_, err := object.DecodeCommit(r, mustID(t, testID))
		require.Error(t, err)
		assert.ErrorIs(t, err, object.ErrInvalidCommit)
	})

	t.Run("malformed header line is an error", func(t *testing.T) {
		t.Parallel()

		payload := "tree " + strings.Repeat("a", 40) + "\n" +
			"bogus line\n" +
			"\n" +
			"msg\n"
		r := bufio.NewReader(strings.NewReader(payload))
		_, err := object.DecodeCommit(r, mustID(t, testID))
		require.Error(t, err)
		assert.ErrorIs(t, err, object.ErrInvalidCommit)
	})
}
