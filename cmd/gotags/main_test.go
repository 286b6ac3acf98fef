package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "package models\n\ntype User struct {\n\tID   int64\n\tName string\n}\n"

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.toml")
	code := run(append([]string{"-config", cfg, "-logfile", "-"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		in      string
		want    [][2]int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "3:10", want: [][2]int{{3, 10}}},
		{in: "3:10, 20:25", want: [][2]int{{3, 10}, {20, 25}}},
		{in: "7", want: [][2]int{{7, 7}}},
		{in: "0:2", wantErr: true},
		{in: "5:2", wantErr: true},
		{in: "a:b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLines(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "gotags version 0.3.0\n", out)
}

func TestPrintsRewrittenFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "user.go")

	code, out, errOut := runCLI(t, "-action", "json-add", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "\tID\tint64`json:\"i_d\"`\n")
	assert.Contains(t, out, "\tName\tstring`json:\"name\"`\n")
	assert.Contains(t, errOut, "2 field(s) in 1 struct(s)")

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, source, string(unchanged))
}

func TestStats(t *testing.T) {
	path := writeSource(t, t.TempDir(), "user.go")

	code, _, errOut := runCLI(t, "-action", "json-add", "-stats", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, errOut, "Lines: 6, Fields: 2, Tagged: 2, Untagged: 0")
}

func TestWritesDirectory(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.go")
	b := writeSource(t, dir, "b.go")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("type X struct {}"), 0o644))

	code, out, errOut := runCLI(t, "-action", "xml-add", "-w", dir)
	require.Equal(t, exitOK, code, errOut)
	assert.Empty(t, out)
	for _, path := range []string{a, b} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "`xml:\"name\"`")
	}
}

func TestSelectedLines(t *testing.T) {
	path := writeSource(t, t.TempDir(), "user.go")

	code, out, errOut := runCLI(t, "-action", "json-add", "-lines", "1:1", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, source, out)
	assert.Contains(t, errOut, "no struct in selection")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.go")
	writeSource(t, dir, "b.go")

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no files", []string{"-action", "json-add"}, "usage:"},
		{"bad lines", []string{"-action", "json-add", "-lines", "x", path}, "invalid line range"},
		{"missing file", []string{"-action", "json-add", filepath.Join(dir, "nope.go")}, "nope.go"},
		{"no action off terminal", []string{path}, "-action is required"},
		{"many files without -w", []string{"-action", "json-add", dir}, "-w is required"},
		{"lines with many files", []string{"-action", "json-add", "-w", "-lines", "1:2", dir}, "-lines needs a single file"},
		{"unknown flag", []string{"-nope"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, errOut, tt.msg)
		})
	}
}

func TestFailuresSetExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.go")
	require.NoError(t, os.WriteFile(path, []byte("package p\n\ntype T struct {\n\tA int /* open\n"), 0o644))

	code, _, errOut := runCLI(t, "-action", "json-add", path)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "GoTags Error:")
}

func TestUnknownActionFails(t *testing.T) {
	path := writeSource(t, t.TempDir(), "user.go")

	code, _, errOut := runCLI(t, "-action", "yaml-add", path)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "Error executing command 'gotags-apply': unknown action \"yaml-add\"")
}
