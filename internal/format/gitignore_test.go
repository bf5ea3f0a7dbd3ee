package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitignoreMatcherRootRules(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, ".gitignore"), "*.log\nbuild/\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "build"), 0o755))

	m := loadGitignore(dir)
	require.NotNil(t, m)

	assert.True(t, m.isIgnored("debug.log", false))
	assert.True(t, m.isIgnored("build", true))
	assert.False(t, m.isIgnored("main.go", false))
}

func TestGitignoreMatcherParentRulesApplyInNestedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, ".gitignore"), "*.tmp\n")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFileAt(t, filepath.Join(sub, ".gitignore"), "keep.tmp\n!keep.tmp\n")

	m := loadGitignore(dir)
	require.NotNil(t, m)

	assert.True(t, m.isIgnored("other.tmp", false))
	assert.True(t, m.isIgnored("sub/other.tmp", false))
}

func TestLoadGitignoreNoFilesReturnsNil(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, "plain.txt"), "x")

	m := loadGitignore(dir)
	assert.Nil(t, m)
}

func TestLoadGitignoreMissingRootReturnsNil(t *testing.T) {
	m := loadGitignore(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Nil(t, m)
}
