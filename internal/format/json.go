package format

import "github.com/hcristescu/nub/internal/dom"

// JSONStrategy is a stub registered for .json so --type json resolves to
// something rather than an error, matching the original's never-finished
// schema-aware parsing (keep all top-level keys, sample arrays head/tail).
//
// TODO: parse into a schema-preserving tree, always keeping top-level keys
// and sampling array elements with a head/tail strategy.
type JSONStrategy struct{}

func NewJSONStrategy() *JSONStrategy { return &JSONStrategy{} }

func (s *JSONStrategy) Name() string         { return "json" }
func (s *JSONStrategy) Extensions() []string { return []string{".json"} }
func (s *JSONStrategy) Detect(string) bool   { return false }

func (s *JSONStrategy) Parse(content string) *dom.Node {
	return &dom.Node{Content: content, Type: dom.TypeDocument, Name: "root"}
}

func (s *JSONStrategy) Rank(*dom.Node) float64 { return 0.5 }

func (s *JSONStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
