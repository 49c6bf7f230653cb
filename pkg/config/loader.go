package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for configuration environment variables
const EnvPrefix = "SCPKG_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadConfiguration builds the effective configuration by layering, in
// order: embedded defaults, runtime path defaults, config files, and
// SCPKG_* environment variables. p may be nil, in which case only the
// system config file is considered and no path defaults are seeded.
func LoadConfiguration(p paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Runtime defaults resolved by the paths layer (mode-dependent)
	if p != nil {
		pathDefaults := map[string]interface{}{
			"install.prefix": p.InstallPrefix(),
			"database.path":  p.DatabasePath(),
			"cache.dir":      p.CacheDir(),
		}
		if err := k.Load(confmap.Provider(pathDefaults, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load path defaults")
		}
	}

	// 3. Config files, later files override earlier ones
	for _, path := range configFileCandidates(p) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	// 4. Environment overrides: SCPKG_INSTALL_PREFIX -> install.prefix
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.buildProtectedSet()
	return &cfg, nil
}

// configFileCandidates lists the config files to try, in load order.
// Each candidate directory is searched for scpkg.toml and scpkg.yaml.
func configFileCandidates(p paths.Paths) []string {
	var tomlCandidates []string
	if p != nil {
		tomlCandidates = p.ConfigFileCandidates()
	} else {
		tomlCandidates = []string{filepath.Join(paths.SystemConfigDir, paths.ConfigFileName)}
	}

	var candidates []string
	for _, c := range tomlCandidates {
		candidates = append(candidates, c)
		candidates = append(candidates, strings.TrimSuffix(c, ".toml")+".yaml")
	}
	return candidates
}

// parserFor picks the koanf parser matching a config file's extension
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
