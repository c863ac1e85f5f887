package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields)  {}
func (nopLogger) Warn(string, out.LogFields)  {}
func (nopLogger) Error(string, out.LogFields) {}

func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func TestFileStorageRoundTrip(t *testing.T) {
	store, err := NewFileStorage(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	_, ok := store.Get(out.StorageKeyToken)
	assert.False(t, ok)

	require.NoError(t, store.Set(out.StorageKeyToken, "tok-123"))

	value, ok := store.Get(out.StorageKeyToken)
	require.True(t, ok)
	assert.Equal(t, "tok-123", value)

	require.NoError(t, store.Delete(out.StorageKeyToken))
	_, ok = store.Get(out.StorageKeyToken)
	assert.False(t, ok)
}

func TestFileStorageSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStorage(dir, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, first.Set(out.StorageKeyUser, `{"id":"3"}`))

	second, err := NewFileStorage(dir, nopLogger{})
	require.NoError(t, err)

	value, ok := second.Get(out.StorageKeyUser)
	require.True(t, ok)
	assert.Equal(t, `{"id":"3"}`, value)
}

func TestFileStorageDeleteMissingKeyIsNoop(t *testing.T) {
	store, err := NewFileStorage(t.TempDir(), nopLogger{})
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never_written"))
}

func TestFileStorageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	store, err := NewFileStorage(dir, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, store.Set(out.StorageKeyToken, "x"))

	value, ok := store.Get(out.StorageKeyToken)
	require.True(t, ok)
	assert.Equal(t, "x", value)
}
