package format

import "github.com/hcristescu/nub/internal/dom"

// ConversationStrategy is a stub registered for .jsonl/.chat so --type
// conversation resolves to something rather than an error, matching the
// original's never-finished turn-aware parsing (preserve system prompt,
// first query, final resolution; fold intermediate debugging loops).
//
// TODO: chunk by message turn, always keeping the system prompt, first
// query, and final resolution, folding intermediate turns.
type ConversationStrategy struct{}

func NewConversationStrategy() *ConversationStrategy { return &ConversationStrategy{} }

func (s *ConversationStrategy) Name() string         { return "conversation" }
func (s *ConversationStrategy) Extensions() []string { return []string{".jsonl", ".chat"} }
func (s *ConversationStrategy) Detect(string) bool   { return false }

func (s *ConversationStrategy) Parse(content string) *dom.Node {
	return &dom.Node{Content: content, Type: dom.TypeDocument, Name: "root"}
}

func (s *ConversationStrategy) Rank(*dom.Node) float64 { return 0.5 }

func (s *ConversationStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
