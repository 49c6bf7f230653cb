// pkg/testutil/fixtures.go
// DEPENDENCIES: archive/zip, archive/tar, klauspost/compress
// PURPOSE: Build package sources (directories and archives) for tests

package testutil

import (
	"archive/tar"
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
)

// FixtureModTime is the modification time stamped on every fixture file,
// so tests can assert that timestamps survive install.
var FixtureModTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// PackageFixture describes a package source for tests.
type PackageFixture struct {
	// Manifest is the manifest.json content at the package root.
	// Empty means the package ships without one.
	Manifest string

	// Files maps paths relative to the package root to their content.
	// Content rooted under "content/" installs; see the installer rules.
	Files map[string]string

	// Modes overrides the default 0644 mode per file
	Modes map[string]os.FileMode
}

// entries returns the fixture's files in a stable order, manifest first.
func (fx PackageFixture) entries() []fixtureEntry {
	var out []fixtureEntry
	if fx.Manifest != "" {
		out = append(out, fixtureEntry{path: "manifest.json", content: fx.Manifest, mode: 0644})
	}

	names := make([]string, 0, len(fx.Files))
	for name := range fx.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mode := os.FileMode(0644)
		if m, ok := fx.Modes[name]; ok {
			mode = m
		}
		out = append(out, fixtureEntry{path: name, content: fx.Files[name], mode: mode})
	}
	return out
}

type fixtureEntry struct {
	path    string
	content string
	mode    os.FileMode
}

// SetupPackageDir lays the fixture out as a plain directory package under
// the sources dir and returns its path.
func (env *TestEnvironment) SetupPackageDir(name string, fx PackageFixture) string {
	env.t.Helper()

	root := filepath.Join(env.SourcesDir, name)
	for _, entry := range fx.entries() {
		fullPath := filepath.Join(root, entry.path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			env.t.Fatalf("Failed to create directory for %s: %v", entry.path, err)
		}
		if err := os.WriteFile(fullPath, []byte(entry.content), entry.mode); err != nil {
			env.t.Fatalf("Failed to write %s: %v", entry.path, err)
		}
		if err := os.Chmod(fullPath, entry.mode); err != nil {
			env.t.Fatalf("Failed to chmod %s: %v", entry.path, err)
		}
		if err := os.Chtimes(fullPath, FixtureModTime, FixtureModTime); err != nil {
			env.t.Fatalf("Failed to set times on %s: %v", entry.path, err)
		}
	}
	return root
}

// BuildZipPackage writes the fixture as a zip archive under the sources
// dir and returns its path.
func (env *TestEnvironment) BuildZipPackage(filename string, fx PackageFixture) string {
	env.t.Helper()

	archivePath := filepath.Join(env.SourcesDir, filename)
	f, err := os.Create(archivePath)
	if err != nil {
		env.t.Fatalf("Failed to create %s: %v", filename, err)
	}
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)
	for _, entry := range fx.entries() {
		header := &zip.FileHeader{
			Name:     entry.path,
			Method:   zip.Deflate,
			Modified: FixtureModTime,
		}
		header.SetMode(entry.mode)
		w, err := zw.CreateHeader(header)
		if err != nil {
			env.t.Fatalf("Failed to add %s to zip: %v", entry.path, err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			env.t.Fatalf("Failed to write %s to zip: %v", entry.path, err)
		}
	}
	if err := zw.Close(); err != nil {
		env.t.Fatalf("Failed to finish zip: %v", err)
	}
	return archivePath
}

// BuildTarGzPackage writes the fixture as a gzipped tarball under the
// sources dir and returns its path.
func (env *TestEnvironment) BuildTarGzPackage(filename string, fx PackageFixture) string {
	env.t.Helper()

	archivePath := filepath.Join(env.SourcesDir, filename)
	f, err := os.Create(archivePath)
	if err != nil {
		env.t.Fatalf("Failed to create %s: %v", filename, err)
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, entry := range fx.entries() {
		header := &tar.Header{
			Name:    entry.path,
			Mode:    int64(entry.mode),
			Size:    int64(len(entry.content)),
			ModTime: FixtureModTime,
		}
		if err := tw.WriteHeader(header); err != nil {
			env.t.Fatalf("Failed to add %s to tar: %v", entry.path, err)
		}
		if _, err := tw.Write([]byte(entry.content)); err != nil {
			env.t.Fatalf("Failed to write %s to tar: %v", entry.path, err)
		}
	}
	if err := tw.Close(); err != nil {
		env.t.Fatalf("Failed to finish tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		env.t.Fatalf("Failed to finish gzip: %v", err)
	}
	return archivePath
}
