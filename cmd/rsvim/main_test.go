package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tempFiles(t *testing.T) (stdin, stdout, stderr *os.File) {
	t.Helper()
	dir := t.TempDir()
	open := func(name string) *os.File {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_RDWR|os.O_CREATE, 0o600)
		assert.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return f
	}
	return open("stdin"), open("stdout"), open("stderr")
}

func readAll(t *testing.T, f *os.File) string {
	t.Helper()
	_, err := f.Seek(0, 0)
	assert.NoError(t, err)
	data, err := os.ReadFile(f.Name())
	assert.NoError(t, err)
	return string(data)
}

func TestRunVersionFlagPrintsVersionAndExitsZero(t *testing.T) {
	stdin, stdout, stderr := tempFiles(t)
	code := run([]string{"--version"}, stdin, stdout, stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, readAll(t, stdout), "rsvim")
}

func TestRunHeadlessWithNoFilesExitsCleanly(t *testing.T) {
	stdin, stdout, stderr := tempFiles(t)
	code := run([]string{"--headless"}, stdin, stdout, stderr)

	assert.Equal(t, exitOK, code)
	assert.Empty(t, readAll(t, stderr))
}

func TestRunHeadlessOpensGivenFiles(t *testing.T) {
	stdin, stdout, stderr := tempFiles(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	assert.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o600))

	code := run([]string{"--headless", path}, stdin, stdout, stderr)
	assert.Equal(t, exitOK, code)
}

func TestRunBadFlagExitsWithInitError(t *testing.T) {
	stdin, stdout, stderr := tempFiles(t)
	code := run([]string{"--not-a-real-flag"}, stdin, stdout, stderr)
	assert.Equal(t, exitInitError, code)
}
