package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dom"
)

// TextStrategy splits plain text into sections (separated by blank lines)
// containing lines, a two-level tree that lets the compressor drop whole
// sections or individual lines within a section.
type TextStrategy struct {
	cfg config.Text
}

// NewTextStrategy builds the default text strategy using cfg's topology
// scores for sections and lines.
func NewTextStrategy(cfg config.Text) *TextStrategy {
	return &TextStrategy{cfg: cfg}
}

func (s *TextStrategy) Name() string         { return "text" }
func (s *TextStrategy) Extensions() []string { return []string{".txt", ".text", ".log"} }
func (s *TextStrategy) Detect(string) bool   { return false }

func (s *TextStrategy) Parse(content string) *dom.Node {
	root := &dom.Node{Content: "", Type: dom.TypeDocument, Name: "root"}
	if content == "" {
		return root
	}

	lines := strings.Split(content, "\n")

	type numbered struct {
		num     int
		content string
	}
	var sections [][]numbered
	var current []numbered

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, numbered{num: i + 1, content: line})
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}

	for secIdx, section := range sections {
		if len(section) == 0 {
			continue
		}
		first, last := section[0].num, section[len(section)-1].num
		sectionNode := &dom.Node{
			Content: "",
			Type:    dom.TypeSection,
			Name:    fmt.Sprintf("S%d:L%d-%d", secIdx+1, first, last),
		}
		for _, ln := range section {
			sectionNode.AddChild(&dom.Node{
				Content:    ln.content,
				Type:       dom.TypeLine,
				Name:       fmt.Sprintf("L%d", ln.num),
				SourceLine: ln.num,
			})
		}
		root.AddChild(sectionNode)
	}

	return root
}

func (s *TextStrategy) Rank(node *dom.Node) float64 {
	if node.Type == dom.TypeSection {
		return s.cfg.SectionScore
	}
	return s.cfg.LineScore
}

func (s *TextStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}

// CustomSeparatorStrategy chunks text by a literal separator or regex
// instead of blank lines, for --separator/--separator-regex. Not
// registered in the format registry — internal/cli builds it directly
// whenever --separator or --separator-regex is given.
type CustomSeparatorStrategy struct {
	cfg             config.Text
	separator       string
	separatorRegexp *regexp.Regexp
}

// NewCustomSeparatorStrategy builds a chunking strategy. Exactly one of
// separator/separatorRegex should be non-empty; if both are empty, parsing
// falls back to splitting on newlines. An invalid separatorRegex is
// absorbed the same way (falls back to newline splitting).
func NewCustomSeparatorStrategy(cfg config.Text, separator, separatorRegex string) *CustomSeparatorStrategy {
	s := &CustomSeparatorStrategy{cfg: cfg, separator: separator}
	if separatorRegex != "" {
		if re, err := regexp.Compile("(?m)" + separatorRegex); err == nil {
			s.separatorRegexp = re
		}
	}
	return s
}

func (s *CustomSeparatorStrategy) Name() string         { return "text-custom" }
func (s *CustomSeparatorStrategy) Extensions() []string { return nil }
func (s *CustomSeparatorStrategy) Detect(string) bool   { return false }

func (s *CustomSeparatorStrategy) Parse(content string) *dom.Node {
	root := &dom.Node{Content: "", Type: dom.TypeDocument, Name: "root"}
	if content == "" {
		return root
	}

	var chunks []string
	switch {
	case s.separatorRegexp != nil:
		chunks = s.separatorRegexp.Split(content, -1)
	case s.separator != "":
		chunks = strings.Split(content, s.separator)
	default:
		chunks = strings.Split(content, "\n")
	}

	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		root.AddChild(&dom.Node{
			Content: strings.TrimSpace(chunk),
			Type:    dom.TypeChunk,
			Name:    fmt.Sprintf("C%d", i+1),
		})
	}

	return root
}

func (s *CustomSeparatorStrategy) Rank(node *dom.Node) float64 {
	if node.Type == dom.TypeChunk {
		return s.cfg.SectionScore
	}
	return s.cfg.LineScore
}

func (s *CustomSeparatorStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
