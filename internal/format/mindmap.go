package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dom"
)

var mindMapNodePattern = regexp.MustCompile(`^\[(\d+)\]\s*(.*)`)
var mindMapDetectPattern = regexp.MustCompile(`(?m)^\[\d+\]`)

// MindMapStrategy parses mind-map-style text where each node is marked
// with a "[N]" prefix, treating each marker as a section boundary.
// Detected by content (at least 3 node markers), not by extension.
type MindMapStrategy struct {
	cfg config.Text
}

// NewMindMapStrategy builds the strategy using cfg's (reused text)
// topology scores.
func NewMindMapStrategy(cfg config.Text) *MindMapStrategy {
	return &MindMapStrategy{cfg: cfg}
}

func (s *MindMapStrategy) Name() string         { return "mindmap" }
func (s *MindMapStrategy) Extensions() []string { return nil }

func (s *MindMapStrategy) Detect(content string) bool {
	return len(mindMapDetectPattern.FindAllString(content, -1)) >= 3
}

type numberedLine struct {
	num     int
	content string
}

func (s *MindMapStrategy) Parse(content string) *dom.Node {
	root := &dom.Node{Content: "", Type: dom.TypeDocument, Name: "root"}
	if content == "" {
		return root
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var currentNode *dom.Node
	var currentLines []numberedLine
	var preamble []numberedLine

	flushPreamble := func() {
		if currentNode == nil && len(preamble) > 0 {
			p := &dom.Node{Content: "", Type: dom.TypeSection, Name: "preamble"}
			addLines(p, preamble)
			root.AddChild(p)
			preamble = nil
		}
	}

	for i, line := range lines {
		m := mindMapNodePattern.FindStringSubmatch(line)
		if m != nil {
			if currentNode != nil && len(currentLines) > 0 {
				addLines(currentNode, currentLines)
				root.AddChild(currentNode)
				currentLines = nil
			}
			flushPreamble()

			currentNode = &dom.Node{Content: "", Type: dom.TypeSection, Name: fmt.Sprintf("[%s]", m[1])}
			currentLines = append(currentLines, numberedLine{num: i + 1, content: line})
			continue
		}

		if currentNode != nil {
			currentLines = append(currentLines, numberedLine{num: i + 1, content: line})
		} else {
			preamble = append(preamble, numberedLine{num: i + 1, content: line})
		}
	}

	if currentNode != nil && len(currentLines) > 0 {
		addLines(currentNode, currentLines)
		root.AddChild(currentNode)
	}
	if currentNode == nil && len(preamble) > 0 {
		p := &dom.Node{Content: "", Type: dom.TypeSection, Name: "preamble"}
		addLines(p, preamble)
		root.AddChild(p)
	}

	return root
}

func addLines(section *dom.Node, lines []numberedLine) {
	for _, ln := range lines {
		section.AddChild(&dom.Node{
			Content:    ln.content,
			Type:       dom.TypeLine,
			Name:       fmt.Sprintf("L%d", ln.num),
			SourceLine: ln.num,
		})
	}
}

func (s *MindMapStrategy) Rank(node *dom.Node) float64 {
	if node.Type == dom.TypeSection {
		return s.cfg.SectionScore * 1.5
	}
	return s.cfg.LineScore
}

func (s *MindMapStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
