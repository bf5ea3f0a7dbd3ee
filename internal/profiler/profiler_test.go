package profiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/format"
	"github.com/hcristescu/nub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *format.Registry {
	cfg := config.Default().Text
	r := format.NewRegistry()
	r.Register(format.NewMarkdownStrategy())
	r.Register(format.NewTextStrategy(cfg))
	return r
}

func TestFileProfilesBasicStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	content := "# Title\n\nsome body text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := File(path, newRegistry())
	require.NoError(t, err)

	assert.Equal(t, path, p.Path)
	assert.Equal(t, int64(len(content)), p.SizeBytes)
	assert.Equal(t, "markdown", p.Format)
	assert.Equal(t, 1.0, p.Confidence)
	assert.NotEmpty(t, p.ContentHash)
	assert.Greater(t, p.TokenCount, 0)
}

func TestFileProfilesTxtExtensionDetectsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\n\nline two\n"), 0o644))

	p, err := File(path, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, "text", p.Format)
}

func TestFileMissingReturnsError(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.md"), newRegistry())
	assert.Error(t, err)
}

func TestHashIsDeterministic(t *testing.T) {
	h1 := hash([]byte("same content"))
	h2 := hash([]byte("same content"))
	h3 := hash([]byte("different content"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestCountTokensEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, countTokens(""))
}

func TestReportIncludesKeySections(t *testing.T) {
	p := Profile{
		Path: "x.md", SizeBytes: 100, LineCount: 5, ContentHash: "abc",
		TokenCount: 42, Format: "markdown", Confidence: 1.0,
		TopologyTop: []ScoredChild{{Name: "Intro", Type: "h1", Score: 0.9}},
	}
	out := Report(p)
	assert.Contains(t, out, "x.md")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, "Intro")
}

func TestReportGoldenOutput(t *testing.T) {
	p := Profile{
		Path: "sample.py", SizeBytes: 1234, LineCount: 42, ContentHash: "abc123",
		TokenCount: 256, Format: "python", Confidence: 1.0,
		TopologyTop: []ScoredChild{
			{Name: "Widget", Type: "class", Score: 0.9},
			{Name: "helper", Type: "function", Score: 0.8},
		},
	}
	testutil.Golden(t, "report", []byte(Report(p)))
}
