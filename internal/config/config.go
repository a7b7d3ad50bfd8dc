// Package config loads dra settings from defaults, a YAML file, DRA_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/FocuswithJustin/dra/internal/archive"
)

// ConfigFileName is the name of the config file looked up in the working
// directory.
const ConfigFileName = "dra.yaml"

// EnvPrefix is the prefix of environment variables read as config keys.
// DRA_LOG_LEVEL sets log_level.
const EnvPrefix = "DRA_"

// DefaultDB is the store path used when nothing else is configured.
const DefaultDB = "dra.db"

// Config holds the resolved settings.
type Config struct {
	DB        string `koanf:"db"`
	CacheDir  string `koanf:"cache_dir"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// SearchDirs are checked in order for dra.yaml when File is empty.
	// Nil means the working directory, then <user config dir>/dra as config.yaml.
	SearchDirs []string
	// Flags holds explicitly set command-line values keyed by config key.
	// Empty strings are ignored.
	Flags map[string]string
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"db":         DefaultDB,
		"cache_dir":  archive.DefaultCacheDir(),
		"log_level":  "warn",
		"log_format": "text",
	}
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment: DRA_CACHE_DIR -> cache_dir. Empty values are unset.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	flags := map[string]interface{}{}
	for key, val := range opts.Flags {
		if val != "" {
			flags[key] = val
		}
	}
	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = configFile
	return &cfg, nil
}

func findConfigFile(opts Options) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return opts.File, nil
	}

	var candidates []string
	if opts.SearchDirs != nil {
		for _, dir := range opts.SearchDirs {
			candidates = append(candidates, filepath.Join(dir, ConfigFileName))
		}
	} else {
		candidates = append(candidates, ConfigFileName)
		if dir, err := os.UserConfigDir(); err == nil {
			candidates = append(candidates, filepath.Join(dir, "dra", "config.yaml"))
		}
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}
