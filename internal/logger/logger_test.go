package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	Init(cfg, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })
	return &out
}

func TestLevelFiltering(t *testing.T) {
	out := capture(t, Config{LogLevel: "warn"})

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown 2")
	assert.Contains(t, out.String(), "source=logger_test.go")
}

func TestSetLevel(t *testing.T) {
	out := capture(t, Config{LogLevel: "info"})

	Debugf("before")
	SetLevel(slog.LevelDebug)
	Debugf("after")

	assert.Equal(t, slog.LevelDebug, Level())
	assert.NotContains(t, out.String(), "before")
	assert.Contains(t, out.String(), "after")
}

func TestTagFilters(t *testing.T) {
	out := capture(t, Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}})

	DebugTagf("noisy", "dropped")
	DebugTagf("gotags", "kept")

	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "tag=gotags")

	out = capture(t, Config{LogLevel: "debug", EnabledTags: []string{"gotags"}})
	Debugf("untagged")
	DebugTagf("gotags", "tagged")

	assert.NotContains(t, out.String(), "untagged")
	assert.Contains(t, out.String(), "tagged")
}

func TestPackageAndFileFilters(t *testing.T) {
	out := capture(t, Config{LogLevel: "debug", DisabledFiles: []string{"logger_test.go"}})
	Infof("from test file")
	assert.NotContains(t, out.String(), "from test file")

	out = capture(t, Config{LogLevel: "debug", EnabledPackages: []string{"somewhere-else"}})
	Infof("from logger package")
	assert.Empty(t, out.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
