package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	d, err := NewDiskv(t.TempDir())
	require.NoError(t, err)
	sq, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Backend{
		BackendDiskv:  d,
		BackendSQLite: sq,
		BackendMemory: NewMemory(),
	}
}

func TestBackendsReadWrite(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Read(ctx, DefaultKey)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Write(ctx, DefaultKey, []byte(`{"a":1}`)))
			require.NoError(t, b.Write(ctx, DefaultKey, []byte(`{}`)))
			got, err := b.Read(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))
		})
	}
}

func TestBackendsLoadCorruptAsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Write(ctx, DefaultKey, []byte("definitely not json")))
			s, ok := New(b, "", nil).Load(ctx)
			assert.False(t, ok)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestDiskvReadsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, err := NewDiskv(dir)
	require.NoError(t, err)
	require.NoError(t, d.Write(ctx, DefaultKey, []byte("one")))
	_, err = d.Read(ctx, DefaultKey)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultKey), []byte("two"), 0o644))
	got, err := d.Read(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
	assert.Equal(t, filepath.Join(dir, DefaultKey), d.Location(DefaultKey))
}

func TestDiskvWritesThroughTempDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, err := NewDiskv(dir)
	require.NoError(t, err)
	require.NoError(t, d.Write(ctx, DefaultKey, []byte(`{}`)))

	got, err := os.ReadFile(filepath.Join(dir, DefaultKey))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	leftover, err := os.ReadDir(filepath.Join(dir, ".tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftover)
}

func TestSQLiteLocation(t *testing.T) {
	dir := t.TempDir()
	sq, err := OpenSQLite(dir)
	require.NoError(t, err)
	defer sq.Close()
	assert.Equal(t, filepath.Join(dir, SQLiteFile), sq.Location(DefaultKey))
}

func TestWatchEmitsOnOutsideWrite(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDiskv(dir)
	require.NoError(t, err)
	a := New(d, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := a.Watch(ctx)
	require.NoError(t, err)

	// let the watcher subscribe before writing
	time.Sleep(50 * time.Millisecond)

	other, err := NewDiskv(dir)
	require.NoError(t, err)
	require.True(t, New(other, "", nil).Save(context.Background(), sample()))

	select {
	case evt := <-ch:
		assert.Equal(t, EventChanged, evt.Type)
		assert.Equal(t, filepath.Join(dir, DefaultKey), evt.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatchRequiresFile(t *testing.T) {
	_, err := New(NewMemory(), "", nil).Watch(context.Background())
	assert.Error(t, err)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "path: " + filepath.Join(dir, "data") + "\nbackend: sqlite\nlog-level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".planner.yaml"), []byte(yaml), 0o644))
	t.Setenv("PLANNER_CONFIG_PATH", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.BasePath())
	assert.Equal(t, BackendSQLite, cfg.Backend())
	assert.Equal(t, DefaultKey, cfg.Key())
	assert.Equal(t, "debug", cfg.LogLevel())

	t.Setenv("PLANNER_BACKEND", "memory")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend())

	t.Setenv("PLANNER_BACKEND", "floppy")
	_, err = LoadConfig()
	assert.Error(t, err)
}
