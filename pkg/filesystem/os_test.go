package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileOperations(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")

	err := fs.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err, "MkdirAll should create nested dirs")

	err = fs.WriteFile(path, []byte("hello"), 0644)
	require.NoError(t, err, "WriteFile should succeed")

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	entries, err := fs.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "file.txt", entries[0].Name())
}

func TestOSMetadataOperations(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "tool")

	require.NoError(t, fs.WriteFile(path, []byte("#!/bin/sh\n"), 0644))

	require.NoError(t, fs.Chmod(path, 0755))
	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	mtime := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
	info, err = fs.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime should round-trip")
}

func TestOSRemoveOperations(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	file := filepath.Join(dir, "a.txt")
	require.NoError(t, fs.WriteFile(file, []byte("x"), 0644))
	require.NoError(t, fs.Remove(file))
	_, err := fs.Stat(file)
	assert.True(t, os.IsNotExist(err), "removed file should be gone")

	tree := filepath.Join(dir, "tree", "deep")
	require.NoError(t, fs.MkdirAll(tree, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(tree, "b.txt"), []byte("y"), 0644))
	require.NoError(t, fs.RemoveAll(filepath.Join(dir, "tree")))
	_, err = fs.Stat(filepath.Join(dir, "tree"))
	assert.True(t, os.IsNotExist(err), "RemoveAll should delete the whole tree")
}
