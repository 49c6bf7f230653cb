package types

import (
	"strings"
	"time"
)

// DefaultVersion is recorded for packages whose manifest does not declare one.
const DefaultVersion = "1.0.0"

// Manifest describes a package as declared by its manifest file.
// Fields left empty by the file are filled with defaults at resolve time,
// so downstream code never has to re-apply them.
type Manifest struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Version     string `json:"version" toml:"version" yaml:"version"`
	Description string `json:"description" toml:"description" yaml:"description"`
}

// ApplyDefaults fills empty manifest fields. The name falls back to
// fallbackName, which callers derive from the archive filename.
func (m *Manifest) ApplyDefaults(fallbackName string) {
	if strings.TrimSpace(m.Name) == "" {
		m.Name = fallbackName
	}
	if strings.TrimSpace(m.Version) == "" {
		m.Version = DefaultVersion
	}
}

// PackageRecord is one installed package as tracked in the database.
// InstalledFiles holds absolute destination paths in install order.
// Installed is always true for present records; the field is kept so the
// database file stays readable by older tools that expect it.
type PackageRecord struct {
	Name           string    `json:"name"`
	Version        string    `json:"version"`
	Description    string    `json:"description"`
	Installed      bool      `json:"installed"`
	InstalledAt    time.Time `json:"installed_at,omitempty"`
	InstalledFiles []string  `json:"files"`
}

// NewPackageRecord builds the record for a completed install.
func NewPackageRecord(manifest Manifest, installedFiles []string, installedAt time.Time) *PackageRecord {
	return &PackageRecord{
		Name:           manifest.Name,
		Version:        manifest.Version,
		Description:    manifest.Description,
		Installed:      true,
		InstalledAt:    installedAt,
		InstalledFiles: installedFiles,
	}
}

// Matches reports whether the record matches a case-insensitive substring
// query against its name or description.
func (r *PackageRecord) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q)
}
