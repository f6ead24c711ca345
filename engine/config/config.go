package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-overlay/engine/core"
)

/**
 * @brief Overlay settings, read from a TOML file.
 *
 *	[log]
 *	level = "info"
 *
 *	[fatal]
 *	mode = "abort"   # or "silent"
 *
 *	[shaders]
 *	dir = "assets/shaders"
 *
 *	[overlay]
 *	watch = true
 */
type Config struct {
	Log     LogConfig     `toml:"log"`
	Fatal   FatalConfig   `toml:"fatal"`
	Shaders ShaderConfig  `toml:"shaders"`
	Overlay OverlayConfig `toml:"overlay"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type FatalConfig struct {
	Mode string `toml:"mode"`
}

type ShaderConfig struct {
	// Dir holds vs.cso/ps.cso or overlay.hlsl. Empty means the built-in shader.
	Dir string `toml:"dir"`
}

type OverlayConfig struct {
	// Watch reloads the configuration file when it changes.
	Watch bool `toml:"watch"`
}

func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Fatal: FatalConfig{Mode: core.FatalAbort.String()},
	}
}

// Parse overlays the values in data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePath expands a leading ~ to the user's home directory and cleans the result.
func ResolvePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

func Load(path string) (*Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

func (c *Config) Validate() error {
	switch c.Fatal.Mode {
	case core.FatalAbort.String(), core.FatalSilent.String():
	default:
		return fmt.Errorf("unknown fatal mode %q", c.Fatal.Mode)
	}
	if _, ok := core.LookupLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c *Config) LogLevel() core.LogLevel {
	return core.ParseLogLevel(c.Log.Level)
}

func (c *Config) FatalMode() core.FatalMode {
	return core.ParseFatalMode(c.Fatal.Mode)
}

// Marshal renders c as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
