package local

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreValidation(t *testing.T) {
	_, err := NewStore("", "/uploads")
	assert.ErrorIs(t, err, errDirRequired)

	_, err = NewStore(t.TempDir(), " ")
	assert.ErrorIs(t, err, errPublicPathRequired)
}

func TestSaveAndRemove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir, "uploads")
	require.NoError(t, err)

	url, size, err := store.Save(ctx, strings.NewReader("solid cube"), "My Cube.stl")
	require.NoError(t, err)
	assert.Equal(t, int64(len("solid cube")), size)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "My-Cube.stl"))

	data, err := os.ReadFile(filepath.Join(dir, path.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "solid cube", string(data))

	require.NoError(t, store.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, path.Base(url)))
	assert.True(t, os.IsNotExist(err))

	// removing again is a no-op
	assert.NoError(t, store.Remove(ctx, url))
}

func TestSaveCollidingNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, _, err := store.Save(ctx, strings.NewReader("a"), "part.stl")
	require.NoError(t, err)
	second, _, err := store.Save(ctx, strings.NewReader("b"), "part.stl")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveStripsPathComponents(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	url, _, err := store.Save(ctx, strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.NotContains(t, url, "..")
	assert.True(t, strings.HasSuffix(url, "passwd"))
}
