package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a mode and validates it.
// Search order: customPath -> ~/.blockbreaker/configs/<mode>.yaml ->
// ./configs/<mode>.yaml -> embedded default -> hard-coded default.
// Only a custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func Load(mode, customPath string) (BlockBreakerConfig, error) {
	cfg, err := load(mode, customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w (from %s)", err, cfg.Source)
	}
	return cfg, nil
}

func load(mode, customPath string) (BlockBreakerConfig, error) {
	filename := mode + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockBreakerConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(mode, data)
		if err != nil {
			return BlockBreakerConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(mode, data); err == nil {
			cfg.Source = path
			return cfg, nil
		}
	}

	if data, err := defaultFiles.ReadFile("defaults/" + filename); err == nil {
		if cfg, err := parse(mode, data); err == nil {
			cfg.Source = "embedded:" + filename
			return cfg, nil
		}
	}

	return Default(mode), nil
}

// parse decodes YAML over the mode's defaults, so a file only needs the
// keys it changes.
func parse(mode string, data []byte) (BlockBreakerConfig, error) {
	cfg := Default(mode)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockBreakerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockbreaker", "configs", filename)
}
