package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hcristescu/nub/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFolderParsePathBuildsTree(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, "readme.txt"), "hello world")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFileAt(t, filepath.Join(dir, "sub", "nested.txt"), "nested content")

	s := NewFolderStrategy()
	root, err := s.ParsePath(dir)
	require.NoError(t, err)

	assert.Equal(t, "directory", root.Type)
	require.Len(t, root.Children, 2)
	// Directories sort before files.
	assert.Equal(t, "directory", root.Children[0].Type)
	assert.Equal(t, "sub", root.Children[0].Name)
	assert.Equal(t, "file", root.Children[1].Type)
	assert.Equal(t, "readme.txt", root.Children[1].Name)

	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "nested.txt", root.Children[0].Children[0].Name)
}

func TestFolderParsePathRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFileAt(t, file, "x")

	s := NewFolderStrategy()
	_, err := s.ParsePath(file)
	assert.Error(t, err)
}

func TestFolderParsePathMissingPath(t *testing.T) {
	s := NewFolderStrategy()
	_, err := s.ParsePath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFolderSkipsDefaultPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "__pycache__"), 0o755))
	writeFileAt(t, filepath.Join(dir, "kept.txt"), "keep me")

	s := NewFolderStrategy()
	root, err := s.ParsePath(dir)
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	assert.Equal(t, "kept.txt", root.Children[0].Name)
}

func TestFolderMaxDepthStopsRecursion(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFileAt(t, filepath.Join(nested, "deep.txt"), "deep")

	s := NewFolderStrategy()
	s.MaxDepth = 1
	root, err := s.ParsePath(dir)
	require.NoError(t, err)

	a := root.Children[0]
	assert.Equal(t, "a", a.Name)
	assert.Empty(t, a.Children)
}

func TestFolderBinaryFileMarkedAtomic(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, "image.png"), "\x89PNG\r\n")

	s := NewFolderStrategy()
	root, err := s.ParsePath(dir)
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	assert.True(t, root.Children[0].Atomic)
	assert.Contains(t, root.Children[0].Content, "[binary]")
}

func TestShouldSkipLiteralSuffixAndGlob(t *testing.T) {
	s := NewFolderStrategy()
	s.SkipPatterns = []string{".git", "*.egg-info", "test_*.py"}

	assert.True(t, s.shouldSkip(".git"))
	assert.True(t, s.shouldSkip("foo.egg-info"))
	assert.True(t, s.shouldSkip("test_something.py"))
	assert.False(t, s.shouldSkip("main.py"))
}

func TestFormatSizeUnits(t *testing.T) {
	assert.Equal(t, "500 bytes", formatSize(500))
	assert.Equal(t, "1.0 KB", formatSize(1024))
	assert.Equal(t, "1.0 MB", formatSize(1024*1024))
}

func TestDecodePreviewTextValidUTF8(t *testing.T) {
	assert.Equal(t, "hello", decodePreviewText([]byte("hello")))
}

func TestDecodePreviewTextInvalidUTF8FallsBackToLatin1(t *testing.T) {
	out := decodePreviewText([]byte{0xff, 0xfe})
	assert.Len(t, []rune(out), 2)
}

func TestFolderRankDirectoryVsFile(t *testing.T) {
	s := NewFolderStrategy()
	assert.Equal(t, 0.8, s.Rank(&dom.Node{Type: "directory"}))
	assert.Equal(t, 0.5, s.Rank(&dom.Node{Type: "file"}))
}
