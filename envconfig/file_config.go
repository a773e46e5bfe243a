package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML configuration file. Environment variables
// always win; the file only backfills unset keys.
type Config struct {
	Checkpoints struct {
		Path string `toml:"path"`
	} `toml:"checkpoints"`

	Converter struct {
		Script string `toml:"script"`
		Python string `toml:"python"`
	} `toml:"converter"`

	Logging struct {
		Debug      bool `toml:"debug"`
		NoProgress bool `toml:"no_progress"`
	} `toml:"logging"`
}

var (
	configOnce sync.Once
	config     *Config
	configPath string
)

// GetConfigPaths returns the candidate config file paths for the current OS,
// in precedence order.
func GetConfigPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "llamashift", "config.toml"))
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			paths = append(paths, filepath.Join(userProfile, ".llamashift", "config.toml"))
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths,
				filepath.Join(home, "Library", "Application Support", "llamashift", "config.toml"),
				filepath.Join(home, ".config", "llamashift", "config.toml"),
				filepath.Join(home, ".llamashift", "config.toml"),
			)
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			paths = append(paths, filepath.Join(xdgConfig, "llamashift", "config.toml"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths,
				filepath.Join(home, ".config", "llamashift", "config.toml"),
				filepath.Join(home, ".llamashift", "config.toml"),
			)
		}
		paths = append(paths, "/etc/llamashift/config.toml")
	}

	return paths
}

// loadConfigFile loads the first config file that exists.
func loadConfigFile() (*Config, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			var cfg Config
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, "", fmt.Errorf("error parsing config file %s: %w", path, err)
			}
			return &cfg, path, nil
		}
	}
	return nil, "", nil
}

// lookupConfig maps an environment variable name to its config file value.
func lookupConfig(cfg *Config, key string) string {
	if cfg == nil {
		return ""
	}

	switch key {
	case "LLAMASHIFT_CHECKPOINTS":
		return cfg.Checkpoints.Path
	case "LLAMASHIFT_SCRIPT":
		return cfg.Converter.Script
	case "LLAMASHIFT_PYTHON":
		return cfg.Converter.Python
	case "LLAMASHIFT_DEBUG":
		if cfg.Logging.Debug {
			return "true"
		}
	case "LLAMASHIFT_NOPROGRESS":
		if cfg.Logging.NoProgress {
			return "true"
		}
	}

	return ""
}

// GetConfigValue returns the config file value for an environment variable
// key, or "" when no config file is present or the key is unset.
func GetConfigValue(key string) string {
	configOnce.Do(func() {
		var err error
		config, configPath, err = loadConfigFile()
		if err != nil {
			slog.Warn("failed to load config file", "error", err)
		} else if config != nil {
			slog.Debug("loaded config file", "path", configPath)
		}
	})

	return lookupConfig(config, key)
}
