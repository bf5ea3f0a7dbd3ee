package format

import (
	"fmt"
	"strings"

	"github.com/hcristescu/nub/internal/dom"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// MarkdownStrategy parses Markdown preserving ATX heading hierarchy
// (H1 > H2 > ... > H6), with paragraphs and fenced/indented code blocks as
// leaves under the nearest enclosing heading. Numbered [N]-marker mind
// maps are handled by MindMapStrategy instead, via content detection.
type MarkdownStrategy struct {
	md goldmark.Markdown
}

// NewMarkdownStrategy builds a markdown strategy backed by goldmark's CommonMark parser.
func NewMarkdownStrategy() *MarkdownStrategy {
	return &MarkdownStrategy{md: goldmark.New()}
}

func (s *MarkdownStrategy) Name() string         { return "markdown" }
func (s *MarkdownStrategy) Extensions() []string { return []string{".md", ".markdown"} }
func (s *MarkdownStrategy) Detect(string) bool    { return false }

func (s *MarkdownStrategy) Parse(content string) *dom.Node {
	root := &dom.Node{Content: "", Type: dom.TypeDocument, Name: "root"}
	if strings.TrimSpace(content) == "" {
		return root
	}

	source := []byte(content)
	reader := gmtext.NewReader(source)
	doc := s.md.Parser().Parse(reader)

	type stackEntry struct {
		level int
		node  *dom.Node
	}
	stack := []stackEntry{{level: 0, node: root}}

	parentFor := func() *dom.Node { return stack[len(stack)-1].node }

	child := doc.FirstChild()
	for child != nil {
		switch n := child.(type) {
		case *ast.Heading:
			title := extractText(n, source)
			level := n.Level
			headingContent := strings.Repeat("#", level) + " " + title

			heading := &dom.Node{
				Content: headingContent,
				Type:    fmt.Sprintf("h%d", level),
				Name:    title,
			}

			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parentFor().AddChild(heading)
			stack = append(stack, stackEntry{level: level, node: heading})

		case *ast.FencedCodeBlock:
			parentFor().AddChild(&dom.Node{
				Content: blockLines(n, source),
				Type:    "code",
				Atomic:  true,
			})

		case *ast.CodeBlock:
			parentFor().AddChild(&dom.Node{
				Content: blockLines(n, source),
				Type:    "code",
				Atomic:  true,
			})

		case *ast.Paragraph:
			text := blockLines(n, source)
			if strings.TrimSpace(text) != "" {
				parentFor().AddChild(&dom.Node{
					Content: text,
					Type:    "paragraph",
				})
			}
		}
		child = child.NextSibling()
	}

	return root
}

// blockLines concatenates a block node's source lines verbatim.
func blockLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// extractText concatenates the text content of an inline subtree (used for
// heading titles).
func extractText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		if t, ok := node.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			return
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

var markdownTypeScores = map[string]float64{
	"h1": 0.9, "h2": 0.8, "h3": 0.7, "h4": 0.6, "h5": 0.6, "h6": 0.6,
	"code": 0.6, "paragraph": 0.5, dom.TypeDocument: 0.5,
}

func (s *MarkdownStrategy) Rank(node *dom.Node) float64 {
	if v, ok := markdownTypeScores[node.Type]; ok {
		return v
	}
	return 0.5
}

func (s *MarkdownStrategy) Render(node *dom.Node, budget int) (string, bool) {
	if budget <= 0 {
		return "", false
	}

	content := node.Content
	runes := []rune(content)
	if len(runes) <= budget {
		return content, true
	}

	if strings.HasPrefix(node.Type, "h") && node.Name != "" {
		level := int(node.Type[1] - '0')
		headingLine := strings.Repeat("#", level) + " " + node.Name
		headingRunes := []rune(headingLine)
		if len(headingRunes) <= budget {
			return headingLine, true
		}
		if budget >= 4 {
			return string(headingRunes[:budget-3]) + "...", true
		}
		return "", false
	}

	if node.Type == "code" || node.Atomic {
		return "", false
	}

	if budget >= 4 {
		return string(runes[:budget-3]) + "...", true
	}
	return "", false
}
