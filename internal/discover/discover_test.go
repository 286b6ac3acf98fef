package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "models/user.go", "package models")
	writeFile(t, dir, "models/user_test.go", "package models")
	writeFile(t, dir, "readme.md", "hello")
	writeFile(t, dir, ".hidden.go", "package x")
	writeFile(t, dir, "vendor/dep/dep.go", "package dep")
	writeFile(t, dir, "testdata/fixture.go", "package fixture")
	writeFile(t, dir, ".git/x.go", "package x")

	files, err := Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.go"),
		filepath.Join(dir, "models", "user.go"),
		filepath.Join(dir, "models", "user_test.go"),
	}, files)
}

func TestFilesHonorsGitignore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, ".gitignore", "gen/\n*_gen.go\n")
	writeFile(t, dir, "a.go", "package a")
	writeFile(t, dir, "a_gen.go", "package a")
	writeFile(t, dir, "gen/b.go", "package gen")

	files, err := Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.go")}, files)
}

func TestExpand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, "pkg/a.go", "package pkg")
	writeFile(t, dir, "pkg/b.go", "package pkg")
	writeFile(t, dir, "notes.txt", "x")

	single := filepath.Join(dir, "pkg", "b.go")
	notes := filepath.Join(dir, "notes.txt")
	got, err := Expand([]string{single, filepath.Join(dir, "pkg"), notes})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "pkg", "a.go"), notes}, got)

	_, err = Expand([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
