package format

import "github.com/hcristescu/nub/internal/dom"

// CSVStrategy is a stub registered for .csv/.tsv so --type csv resolves to
// something rather than an error. The original implementation never built
// row-aware parsing either (header preservation, head/tail row sampling);
// this mirrors that scope exactly rather than inventing it.
//
// TODO: parse rows preserving the header, sampling the body with a uniform
// head/tail stride.
type CSVStrategy struct{}

func NewCSVStrategy() *CSVStrategy { return &CSVStrategy{} }

func (s *CSVStrategy) Name() string         { return "csv" }
func (s *CSVStrategy) Extensions() []string { return []string{".csv", ".tsv"} }
func (s *CSVStrategy) Detect(string) bool   { return false }

func (s *CSVStrategy) Parse(content string) *dom.Node {
	return &dom.Node{Content: content, Type: dom.TypeDocument, Name: "root"}
}

func (s *CSVStrategy) Rank(*dom.Node) float64 { return 0.5 }

func (s *CSVStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
