//go:build unit
// +build unit

package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalImageStore(root, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	showID := uuid.NewString()
	path, err := store.Save(ctx, showID, "Probe.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, showID+"/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	rc, err := store.Open(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Delete(ctx, path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalImageStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalImageStore(t.TempDir(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Open(ctx, "/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Save(ctx, "../escape", "x.png", strings.NewReader("x"))
	assert.Error(t, err)
}
