package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Environment variables applied on top of the file configuration.
const (
	EnvAssets = "ARKANOID_ASSETS"
	EnvMusic  = "ARKANOID_MUSIC"
	EnvLives  = "ARKANOID_LIVES"
	EnvSkin   = "ARKANOID_SKIN"
)

// configNames are tried in order inside each config directory.
var configNames = []string{"arkanoid.yaml", "arkanoid.yml", "arkanoid.toml"}

// Load loads the arkanoid configuration.
// Search order: customPath -> ~/.arkanoid/configs/arkanoid.{yaml,toml} ->
// ./configs/arkanoid.{yaml,toml} -> embedded default -> hardcoded default.
// Files are layered over the defaults, so a partial file only changes the
// keys it names.
func Load(customPath string) (ArkanoidConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return DefaultArkanoidConfig(), err
		}
		return cfg, nil
	}

	for _, dir := range []string{userConfigDir(), "configs"} {
		if dir == "" {
			continue
		}
		for _, name := range configNames {
			if cfg, err := LoadFile(filepath.Join(dir, name)); err == nil {
				return cfg, nil
			}
		}
	}

	return Embedded(), nil
}

// Embedded decodes the embedded default YAML, falling back to the hardcoded
// defaults if that fails.
func Embedded() ArkanoidConfig {
	cfg := DefaultArkanoidConfig()
	if err := yaml.Unmarshal(defaultArkanoidYAML, &cfg); err != nil {
		return DefaultArkanoidConfig()
	}
	return cfg
}

// LoadFile reads one config file, picking the decoder by extension.
func LoadFile(path string) (ArkanoidConfig, error) {
	cfg := DefaultArkanoidConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return DefaultArkanoidConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultArkanoidConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg. ext is a file extension such as ".yaml".
func Decode(data []byte, ext string, cfg *ArkanoidConfig) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ApplyEnv loads .env files (missing files are ignored) and applies the
// ARKANOID_* overrides. Malformed values are reported and left unapplied.
func ApplyEnv(cfg *ArkanoidConfig, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: cannot read %s: %w", f, err)
		}
	}

	var errs []error
	if v := os.Getenv(EnvAssets); v != "" {
		roots := filepath.SplitList(v)
		cfg.Assets.Roots = append(roots, cfg.Assets.Roots...)
	}
	if v := os.Getenv(EnvMusic); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMusic, err))
		} else {
			cfg.Audio.Music = on
		}
	}
	if v := os.Getenv(EnvLives); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvLives, err))
		case n <= 0 || n > cfg.Gameplay.MaxLives:
			errs = append(errs, fmt.Errorf("%s: %d out of range 1..%d", EnvLives, n, cfg.Gameplay.MaxLives))
		default:
			cfg.Gameplay.Lives = n
		}
	}
	if v := os.Getenv(EnvSkin); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSkin, err))
		} else {
			cfg.Assets.Skin = n
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: bad environment: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigDir returns ~/.arkanoid/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arkanoid", "configs")
}
