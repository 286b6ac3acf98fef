package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level written: "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output file. Empty or "-" means stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// A package is the base name of the caller's directory, e.g. "gotags".
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these files (if non-empty), e.g. "fields.go".
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these files.
	DisabledFiles []string `toml:"disabled_files"`

	level    slog.Level
	tags     filterSet
	packages filterSet
	files    filterSet
}

// NewConfig returns the default logger settings.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.tags = newFilterSet(c.EnabledTags, c.DisabledTags)
	c.packages = newFilterSet(c.EnabledPackages, c.DisabledPackages)
	c.files = newFilterSet(c.EnabledFiles, c.DisabledFiles)
}

// filterSet is an allow list and a deny list of lower-cased names.
type filterSet struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

func newFilterSet(enabled, disabled []string) filterSet {
	return filterSet{enabled: sliceToSet(enabled), disabled: sliceToSet(disabled)}
}

// allows reports whether name passes the set. The deny list wins.
func (f filterSet) allows(name string) bool {
	name = strings.ToLower(name)
	if _, found := f.disabled[name]; found {
		return false
	}
	if f.enabled == nil {
		return true
	}
	_, found := f.enabled[name]
	return found
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
