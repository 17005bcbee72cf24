package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/paths"
)

// EnvPrefix is the prefix for configuration environment variables.
// CHIPBUILD_OUTPUT_DIR overrides output_dir, and so on.
const EnvPrefix = "CHIPBUILD_"

// Load resolves the effective configuration. Layers, lowest to highest
// precedence: embedded defaults, the user config file, the checkout config
// file, CHIPBUILD_ environment variables.
func Load(p paths.Paths) (*Config, error) {
	return LoadWithOverrides(p, nil)
}

// LoadWithOverrides resolves the configuration like Load and then applies
// overrides as the highest-precedence layer. Keys use the config file
// spelling (output_dir, source_root). Callers pass flag values here so the
// resolved Config reflects what the run will actually use.
func LoadWithOverrides(p paths.Paths, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	for _, path := range []string{p.ConfigFilePath(), p.RootConfigFilePath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load configuration from %s", path)
		}
	}

	// Config keys are flat, so the env name maps to the key by stripping
	// the prefix and lowercasing.
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg := &Config{}
	if err := unmarshal(k, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the embedded defaults alone.
func Default() *Config {
	cfg := &Config{}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return cfg
	}
	_ = unmarshal(k, cfg)
	return cfg
}

func unmarshal(k *koanf.Koanf, cfg *Config) error {
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return nil
}
