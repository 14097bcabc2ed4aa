package store_test

import (
	"testing"

	"github.com/loosegit/loosegit/ident"
	"github.com/loosegit/loosegit/internal/testutil/repofixture"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/loosegit/loosegit/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "4ddb0025ef5914b51fb835495f5259a6d962df21"

func TestObjectPath(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := ident.New(testID)
	require.NoError(t, err)

	p := store.ObjectPath(fx.Cfg, id)
	assert.Equal(t, fx.Cfg.ObjectDirPath+"/4d/db0025ef5914b51fb835495f5259a6d962df21", p)
}

func TestStoreReadHeader(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := ident.New(testID)
	require.NoError(t, err)

	payload := []byte("tree " + sampleTree() + "\nauthor a <a@x> 1 +0000\ncommitter a <a@x> 1 +0000\n\nhi\n")
	fx.WriteObject(testID, "commit", payload)

	s := store.New(fx.Cfg, 0, nil)
	h, err := s.ReadHeader(id)
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), h.ContentLength)
}

func TestStoreReadObjectCommit(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := ident.New(testID)
	require.NoError(t, err)

	tree := sampleTree()
	fx.WriteCommit(testID, tree, "", "Jane Doe <jane@example.com> 1566115917 -0700", "Jane Doe <jane@example.com> 1566115917 -0700", "initial\n")

	s := store.New(fx.Cfg, 8, nil)
	o, err := s.ReadObject(id)
	require.NoError(t, err)

	c, ok := o.AsCommit()
	require.True(t, ok)
	assert.Equal(t, tree, c.Tree.String())
	assert.Nil(t, c.Parent)
	assert.Equal(t, "initial", c.Message)

	// second read should hit the cache and return the same pointer
	o2, err := s.ReadObject(id)
	require.NoError(t, err)
	assert.Same(t, o, o2)
}

func TestStoreReadObjectNotFound(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := ident.New(testID)
	require.NoError(t, err)

	s := store.New(fx.Cfg, 0, nil)
	_, err = s.ReadObject(id)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestStoreReadObjectTracesCacheHit(t *testing.T) {
	t.Parallel()

	fx := repofixture.New(t)
	id, err := ident.New(testID)
	require.NoError(t, err)

	tree := sampleTree()
	fx.WriteCommit(testID, tree, "", "Jane Doe <jane@example.com> 1566115917 -0700", "Jane Doe <jane@example.com> 1566115917 -0700", "initial\n")

	tr := tracelog.New(true)
	hook := &test.Hook{}
	tr.AddHook(hook)

	s := store.New(fx.Cfg, 8, tr)
	_, err = s.ReadObject(id)
	require.NoError(t, err)
	_, err = s.ReadObject(id)
	require.NoError(t, err)

	messages := make([]string, len(hook.Entries))
	for i, e := range hook.Entries {
		messages[i] = e.Message
	}
	assert.Contains(t, messages, "reading loose object")
	assert.Contains(t, messages, "object cache hit")
}

func sampleTree() string {
	return "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
}
