package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/filesystem"
)

func TestLoadMissingFile(t *testing.T) {
	store := database.New(filesystem.NewOS(), filepath.Join(t.TempDir(), "packages.json"))

	doc, warnings := store.Load()

	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, warnings, "a missing database is normal, not a warning")
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0644))

	store := database.New(filesystem.NewOS(), path)
	doc, warnings := store.Load()

	assert.Equal(t, 0, doc.Len(), "corrupt database starts empty")
	require.Len(t, warnings, 1)
	assert.Equal(t, "DATABASE_CORRUPT", warnings[0].Code)
	assert.Equal(t, path, warnings[0].Path)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "packages.json")
	store := database.New(filesystem.NewOS(), path)

	doc := database.NewDocument()
	doc.Set(record("editor", "1.5.2", "/usr/local/bin/editor"))
	doc.Set(record("pager", "2.0.0", "/usr/local/bin/pager", "/usr/local/share/man/man1/pager.1"))
	require.NoError(t, store.Save(doc))

	loaded, warnings := store.Load()
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"editor", "pager"}, loaded.Names())

	pager, ok := loaded.Get("pager")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", pager.Version)
	assert.True(t, pager.Installed)
	assert.Len(t, pager.InstalledFiles, 2)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "var", "lib", "scpkg", "packages.json")
	store := database.New(filesystem.NewOS(), path)

	require.NoError(t, store.Save(database.NewDocument()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestSaveWholeDocumentReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.json")
	store := database.New(filesystem.NewOS(), path)

	doc := database.NewDocument()
	doc.Set(record("keepme", "1.0.0"))
	doc.Set(record("dropme", "1.0.0"))
	require.NoError(t, store.Save(doc))

	doc.Delete("dropme")
	require.NoError(t, store.Save(doc))

	loaded, _ := store.Load()
	assert.Equal(t, []string{"keepme"}, loaded.Names())
	assert.False(t, loaded.Has("dropme"))
}
