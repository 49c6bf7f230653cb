// Package manifest resolves package metadata from an extracted tree.
// A missing or malformed manifest never fails an install; the package
// name falls back to the archive name and the degradation is reported
// as a warning.
package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/types"
)

// fileNames lists the manifest files recognized at the extracted root, in
// resolution order. The first one that parses wins.
var fileNames = []string{
	"manifest.json",
	"manifest.toml",
	"manifest.yaml",
	"manifest.yml",
}

// Resolution is the outcome of manifest resolution.
type Resolution struct {
	// Manifest has defaults applied and is safe to use as-is
	Manifest types.Manifest

	// File is the manifest filename that was parsed, empty when the
	// manifest was synthesized from the archive name
	File string

	// Warnings describes any degradation that happened on the way
	Warnings []types.Warning
}

// Synthesized reports whether the manifest was built from the fallback
// name rather than parsed from a file.
func (r *Resolution) Synthesized() bool {
	return r.File == ""
}

// IsManifestFile reports whether name is a recognized manifest filename.
// The installer uses this to keep root-level manifests out of the prefix.
func IsManifestFile(name string) bool {
	for _, candidate := range fileNames {
		if name == candidate {
			return true
		}
	}
	return false
}

// Resolve finds and parses the manifest at the root of extractedDir.
// A missing or malformed manifest yields a synthetic one named after
// fallbackName, with a warning attached.
func Resolve(fsys types.FS, extractedDir, fallbackName string) Resolution {
	logger := logging.GetLogger("manifest")
	var warnings []types.Warning

	for _, name := range fileNames {
		path := filepath.Join(extractedDir, name)
		if _, err := fsys.Stat(path); err != nil {
			continue
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			warnings = append(warnings, parseWarning(name, err))
			logger.Warn().Err(err).Str("file", name).Msg("Manifest unreadable, trying next candidate")
			continue
		}

		var m types.Manifest
		if err := unmarshal(name, data, &m); err != nil {
			warnings = append(warnings, parseWarning(name, err))
			logger.Warn().Err(err).Str("file", name).Msg("Manifest malformed, trying next candidate")
			continue
		}

		m.ApplyDefaults(fallbackName)
		logger.Debug().
			Str("file", name).
			Str("name", m.Name).
			Str("version", m.Version).
			Msg("Manifest resolved")
		return Resolution{Manifest: m, File: name, Warnings: warnings}
	}

	// No parseable manifest: synthesize one from the archive name
	m := types.Manifest{}
	m.ApplyDefaults(fallbackName)
	warnings = append(warnings, types.Warning{
		Code:    string(errors.ErrManifestParse),
		Message: "no usable manifest found, package name taken from the archive name",
	})
	logger.Warn().Str("name", m.Name).Msg("No usable manifest, synthesized from archive name")
	return Resolution{Manifest: m, Warnings: warnings}
}

// unmarshal picks the decoder matching the manifest filename
func unmarshal(name string, data []byte, m *types.Manifest) error {
	switch filepath.Ext(name) {
	case ".toml":
		return toml.Unmarshal(data, m)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, m)
	default:
		return json.Unmarshal(data, m)
	}
}

func parseWarning(name string, err error) types.Warning {
	return types.Warning{
		Code:    string(errors.ErrManifestParse),
		Message: "manifest file is malformed: " + err.Error(),
		Path:    name,
	}
}
