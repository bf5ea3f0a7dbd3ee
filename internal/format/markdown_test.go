package format

import (
	"testing"

	"github.com/hcristescu/nub/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownParseHeadingHierarchy(t *testing.T) {
	s := NewMarkdownStrategy()
	root := s.Parse("# Title\n\nintro paragraph\n\n## Section\n\nsection body\n")

	require.Len(t, root.Children, 1)
	h1 := root.Children[0]
	assert.Equal(t, "h1", h1.Type)
	assert.Equal(t, "Title", h1.Name)

	require.Len(t, h1.Children, 2)
	assert.Equal(t, "paragraph", h1.Children[0].Type)
	assert.Equal(t, "intro paragraph", h1.Children[0].Content)

	h2 := h1.Children[1]
	assert.Equal(t, "h2", h2.Type)
	assert.Equal(t, "Section", h2.Name)
	require.Len(t, h2.Children, 1)
	assert.Equal(t, "section body", h2.Children[0].Content)
}

func TestMarkdownParsePopsStackOnLowerLevel(t *testing.T) {
	s := NewMarkdownStrategy()
	root := s.Parse("# One\n## Two\n### Three\n## Four\n")

	require.Len(t, root.Children, 1)
	one := root.Children[0]
	require.Len(t, one.Children, 2)
	assert.Equal(t, "Two", one.Children[0].Name)
	assert.Equal(t, "Four", one.Children[1].Name)
	require.Len(t, one.Children[0].Children, 1)
	assert.Equal(t, "Three", one.Children[0].Children[0].Name)
}

func TestMarkdownFencedCodeBlockIsAtomic(t *testing.T) {
	s := NewMarkdownStrategy()
	root := s.Parse("# Title\n\n```go\nfunc main() {}\n```\n")

	require.Len(t, root.Children[0].Children, 1)
	code := root.Children[0].Children[0]
	assert.Equal(t, "code", code.Type)
	assert.True(t, code.Atomic)
	assert.Contains(t, code.Content, "func main()")
}

func TestMarkdownBlankParagraphSkipped(t *testing.T) {
	s := NewMarkdownStrategy()
	root := s.Parse("# Title\n\n   \n\nreal text\n")
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "real text", root.Children[0].Children[0].Content)
}

func TestMarkdownParseEmptyContent(t *testing.T) {
	s := NewMarkdownStrategy()
	root := s.Parse("   \n")
	assert.Empty(t, root.Children)
}

func TestMarkdownRankByHeadingLevel(t *testing.T) {
	s := NewMarkdownStrategy()
	assert.Equal(t, 0.9, s.Rank(&dom.Node{Type: "h1"}))
	assert.Equal(t, 0.6, s.Rank(&dom.Node{Type: "h4"}))
	assert.Equal(t, 0.6, s.Rank(&dom.Node{Type: "code"}))
	assert.Equal(t, 0.5, s.Rank(&dom.Node{Type: "paragraph"}))
}

func TestMarkdownRenderHeadingFallsBackToNameOnly(t *testing.T) {
	s := NewMarkdownStrategy()
	n := &dom.Node{Type: "h2", Name: "A Very Long Heading Title That Overflows", Content: "## A Very Long Heading Title That Overflows\nwith body text folded in too"}
	out, ok := s.Render(n, 20)
	require.True(t, ok)
	assert.LessOrEqual(t, len([]rune(out)), 20)
}

func TestMarkdownRenderCodeNeverMidTruncates(t *testing.T) {
	s := NewMarkdownStrategy()
	n := &dom.Node{Type: "code", Content: "a very long code block that does not fit", Atomic: true}
	_, ok := s.Render(n, 10)
	assert.False(t, ok)
}

func TestMarkdownRenderParagraphEllipsis(t *testing.T) {
	s := NewMarkdownStrategy()
	n := &dom.Node{Type: "paragraph", Content: "a long paragraph of text that needs truncating"}
	out, ok := s.Render(n, 10)
	require.True(t, ok)
	assert.Equal(t, 10, len([]rune(out)))
}
