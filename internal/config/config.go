// Package config loads gotags settings from defaults, a TOML file and
// command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/gotags/internal/logger"
)

// Config holds the combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`

	// Plugins holds one table per plugin, e.g. [plugins.gotags].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Plugins: map[string]map[string]interface{}{
			"gotags": {
				"debug":     false,
				"orm_tag":   DefaultORMTag,
				"orm_types": map[string]interface{}{},
			},
		},
	}
}

// DefaultPath returns ~/.config/gotags/config.toml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("config file not found: %s", filePath)
		return nil
	} else if err != nil {
		return fmt.Errorf("checking config file '%s': %w", filePath, err)
	}

	fileCfg := &Config{}
	metadata, err := toml.DecodeFile(filePath, fileCfg)
	if err != nil {
		return fmt.Errorf("parsing config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("config file '%s': unrecognized keys: %v", filePath, undecoded)
	}

	if metadata.IsDefined("logger") {
		cfg.Logger = fileCfg.Logger
	}
	for name, values := range fileCfg.Plugins {
		if cfg.Plugins[name] == nil {
			cfg.Plugins[name] = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			cfg.Plugins[name][k] = v
		}
	}
	logger.Debugf("loaded configuration from %s", filePath)
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
	gt := c.Plugins["gotags"]
	if gt == nil {
		c.Plugins["gotags"] = defaults.Plugins["gotags"]
		return
	}
	if tag, ok := gt["orm_tag"].(string); !ok || tag == "" {
		gt["orm_tag"] = DefaultORMTag
	}
	if _, ok := gt["debug"].(bool); !ok {
		gt["debug"] = false
	}
	if _, ok := gt["orm_types"].(map[string]interface{}); !ok {
		gt["orm_types"] = map[string]interface{}{}
	}
}

// Load builds a Config from defaults, the file at configFilePath (or the
// default location when empty) and the flags that were set.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}
	var err error
	if path != "" {
		err = loadFromFile(cfg, path)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once. Later calls return
// the first result.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginValue returns the setting key of plugin name.
func (c *Config) PluginValue(name, key string) (interface{}, bool) {
	values, ok := c.Plugins[name]
	if !ok {
		return nil, false
	}
	v, ok := values[key]
	return v, ok
}
