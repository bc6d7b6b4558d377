package dap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *PathResolver {
	t.Helper()
	resolver, err := NewPathResolver()
	require.NoError(t, err)
	return resolver
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPreflightReplacePasses(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "code.py", "def hello():\n    pass\n")

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: path, Search: "def hello():\n    pass\n", Replace: "def world():\n"},
	})
	assert.True(t, ok)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
}

func TestPreflightReplaceFileNotFound(t *testing.T) {
	dir := t.TempDir()

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "missing.py"), Search: "x\n", Replace: "y\n"},
	})
	assert.False(t, ok)
	assert.Equal(t, "File not found", results[0].Detail)
}

func TestPreflightSearchBlockNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "alpha\n")

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: path, Search: "beta\n", Replace: "gamma\n"},
	})
	assert.False(t, ok)
	assert.Equal(t, "Search block not found", results[0].Detail)
}

func TestPreflightAmbiguousSearchBlock(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "dup\nmid\ndup\n")

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: path, Search: "dup\n", Replace: "x\n"},
	})
	assert.False(t, ok)
	assert.Equal(t, "Search block is ambiguous, found 2 times", results[0].Detail)
}

func TestPreflightDelete(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "content\n")

	ok, results := Preflight(testResolver(t), []Edit{{Path: path, Delete: true}})
	assert.True(t, ok)
	assert.Equal(t, "File scheduled for deletion", results[0].Detail)

	ok, results = Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "missing.txt"), Delete: true},
	})
	assert.False(t, ok)
	assert.Equal(t, "File not found, cannot delete", results[0].Detail)
}

func TestPreflightEmptySearchNewFile(t *testing.T) {
	dir := t.TempDir()

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "new.txt"), Replace: "hello\n"},
	})
	assert.True(t, ok)
	assert.Equal(t, "New file creation", results[0].Detail)
}

func TestPreflightEmptySearchWhitespaceFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "blank.txt", "\n   \n\n")

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: path, Replace: "hello\n"},
	})
	assert.True(t, ok)
	assert.Equal(t, "Overwrite empty file", results[0].Detail)
}

func TestPreflightEmptySearchNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "full.txt", "precious content\n")

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: path, Replace: "hello\n"},
	})
	assert.False(t, ok)
	assert.Equal(t, "Search block is empty, but target file is not empty", results[0].Detail)
}

func TestPreflightMove(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "old.txt", "content\n")
	dst := filepath.Join(dir, "new.txt")

	ok, results := Preflight(testResolver(t), []Edit{{Path: src, MoveTo: dst}})
	assert.True(t, ok)
	assert.Contains(t, results[0].Detail, "Move to")
}

func TestPreflightMoveSourceMissing(t *testing.T) {
	dir := t.TempDir()

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "missing.txt"), MoveTo: filepath.Join(dir, "new.txt")},
	})
	assert.False(t, ok)
	assert.Equal(t, "Source file not found", results[0].Detail)
}

func TestPreflightMoveDestinationExists(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "old.txt", "a\n")
	dst := writeTestFile(t, dir, "new.txt", "b\n")

	ok, results := Preflight(testResolver(t), []Edit{{Path: src, MoveTo: dst}})
	assert.False(t, ok)
	assert.Contains(t, results[0].Detail, "already exists")
}

func TestPreflightUdiff(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.py", "def hello():\n    pass\n")

	hunk := Hunk{
		OldStart: 1,
		Lines:    []string{" def hello():\n", "+    print('hi')\n", "     pass\n"},
	}

	ok, results := Preflight(testResolver(t), []Edit{{Path: path, Hunks: []Hunk{hunk}}})
	assert.True(t, ok)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
}

func TestPreflightUdiffFileNotFound(t *testing.T) {
	dir := t.TempDir()
	hunk := Hunk{OldStart: 1, Lines: []string{" x\n"}}

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "missing.py"), Hunks: []Hunk{hunk}},
	})
	assert.False(t, ok)
	assert.Equal(t, "File not found", results[0].Detail)
}

func TestPreflightUdiffNewFileCreation(t *testing.T) {
	dir := t.TempDir()
	hunk := Hunk{OldStart: 0, Lines: []string{"+a\n"}}

	ok, results := Preflight(testResolver(t), []Edit{
		{Path: filepath.Join(dir, "new.py"), Hunks: []Hunk{hunk}},
	})
	assert.True(t, ok)
	assert.Equal(t, "New file creation via udiff", results[0].Detail)
}

func TestPreflightBatchGateAndReadOnly(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.txt", "hello\n")

	edits := []Edit{
		{Path: good, Search: "hello\n", Replace: "goodbye\n"},
		{Path: filepath.Join(dir, "missing.txt"), Search: "x\n", Replace: "y\n"},
	}

	ok, results := Preflight(testResolver(t), edits)
	assert.False(t, ok)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)

	// Preflight never mutates; the valid edit's target stays untouched.
	content, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}
