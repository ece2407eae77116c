package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	_, err = kv.Get(ctx, "colleges")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "colleges", []byte(`[{"id":"1"}]`)))
	data, err := kv.Get(ctx, "colleges")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	require.NoError(t, kv.Set(ctx, "colleges", []byte(`[]`)))
	data, err = kv.Get(ctx, "colleges")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = os.Stat(filepath.Join(dir, "colleges.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, kv.Set(context.Background(), key, []byte("{}")))
		})
	}
}

func TestFileKV_CancelledContext(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, kv.Set(ctx, "colleges", []byte("[]")), context.Canceled)
	_, err = kv.Get(ctx, "colleges")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileKV_RequiresDir(t *testing.T) {
	_, err := NewFileKV("")
	assert.Error(t, err)
}
