package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportName(t *testing.T) {
	assert.Equal(t, "case.txt", ReportName("case"))
	assert.Equal(t, "case.txt", ReportName("case.txt"))
	assert.Equal(t, "case.csv.txt", ReportName("case.csv"))
}

func TestStore_WriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	store, err := New(dir)
	require.NoError(t, err)

	path, err := store.Write("dreams", "hello\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dreams.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	text, err := store.Read("dreams.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", text)

	// Overwrites replace the whole file.
	_, err = store.Write("dreams.txt", "bye\n")
	require.NoError(t, err)
	text, err = store.Read("dreams")
	require.NoError(t, err)
	assert.Equal(t, "bye\n", text)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_ReadMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_InvalidNames(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape", "sub/dir", ".hidden"} {
		_, err := store.Write(name, "x")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestStore_WriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	// A directory squatting on the target path makes the final rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.txt"), 0o755))

	_, err = store.Write("blocked", "report")
	require.ErrorIs(t, err, ErrWriteArtifact)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestStore_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))

	_, err = store.Write("case", "report")
	assert.ErrorIs(t, err, ErrWriteArtifact)
}
