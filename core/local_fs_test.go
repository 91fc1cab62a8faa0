package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	lfs := GetDefaultLocalFs()

	require.NoError(t, lfs.WriteFileAtomic(path, []byte(`{"a":1}`), 0644))
	assert.Equal(t, `{"a":1}`, readTestFile(t, path))

	require.NoError(t, os.Chmod(path, 0600))
	require.NoError(t, lfs.WriteFileAtomic(path, []byte(`{}`), 0644))
	assert.Equal(t, `{}`, readTestFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ConfigFileName)
	assert.Error(t, GetDefaultLocalFs().WriteFileAtomic(path, []byte(`{}`), 0644))
}
