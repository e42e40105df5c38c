package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const baseName = "invaders"

// Load loads the Invaders configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.{yaml,toml} ->
// ./configs/invaders.yaml -> embedded default -> hardcoded default.
// Only an explicit customPath can produce an error.
func Load(customPath string) (InvadersConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, ext := range []string{".yaml", ".toml"} {
		if p := userConfigPath(baseName + ext); p != "" {
			if cfg, ok := tryLoad(p); ok {
				return cfg, nil
			}
		}
	}

	if cfg, ok := tryLoad(filepath.Join("configs", baseName+".yaml")); ok {
		return cfg, nil
	}

	cfg, err := decode("embedded.yaml", defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil
	}
	return cfg, nil
}

func tryLoad(path string) (InvadersConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InvadersConfig{}, false
	}
	cfg, err := decode(path, data)
	if err != nil {
		return InvadersConfig{}, false
	}
	return cfg, true
}

// decode parses data on top of the hardcoded defaults, so partial files
// only override the keys they set. The format is picked by extension.
func decode(path string, data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// userConfigPath returns the path in ~/.invaders/configs, or "" if the home
// directory is unknown.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", name)
}
