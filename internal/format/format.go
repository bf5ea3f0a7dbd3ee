// Package format defines the format-strategy interface (spec §4.4) and a
// registry for resolving a strategy by file extension, content-sniffing
// detection, or explicit name override.
package format

import (
	"strings"

	"github.com/hcristescu/nub/internal/dom"
)

// Strategy handles one content type: parsing it into a DOM tree, ranking
// its nodes' topology importance, and rendering leaves at a progressive
// level of detail as budget shrinks.
type Strategy interface {
	Name() string
	Extensions() []string

	// Detect is magic content-sniffing: true if content looks like this
	// format. The default fallback (text) never needs to be detected.
	Detect(content string) bool

	Parse(content string) *dom.Node

	// Rank returns a node's topology score (0.0-1.0), the T term of the
	// importance-score formula.
	Rank(node *dom.Node) float64

	// Render renders node at the given char budget. ok is false when the
	// budget is too small for anything useful, signaling the caller to
	// fold the node into a count marker instead.
	Render(node *dom.Node, budget int) (content string, ok bool)
}

// Match is the result of registry detection.
type Match struct {
	Strategy   Strategy
	Confidence float64
}

// Registry resolves a Strategy by name, extension, or content detection.
type Registry struct {
	strategies  []Strategy
	byExtension map[string]Strategy
	byName      map[string]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]Strategy),
		byName:      make(map[string]Strategy),
	}
}

// Register adds strategy to the registry. For extensions already claimed
// by a previously registered strategy, the first registration wins.
func (r *Registry) Register(strategy Strategy) {
	r.strategies = append(r.strategies, strategy)
	r.byName[strategy.Name()] = strategy
	for _, ext := range strategy.Extensions() {
		if _, exists := r.byExtension[ext]; !exists {
			r.byExtension[ext] = strategy
		}
	}
}

// ByName returns the strategy registered under name (for --type overrides).
func (r *Registry) ByName(name string) (Strategy, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// ByExtension returns the strategy registered for ext ("go" or ".go").
func (r *Registry) ByExtension(ext string) (Strategy, bool) {
	if ext == "" {
		return nil, false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s, ok := r.byExtension[strings.ToLower(ext)]
	return s, ok
}

// Detect resolves the best strategy for content, preferring an extension
// match on filename (confidence 1.0), falling back to content-sniffing
// (confidence 0.8). Returns ok=false to let the caller apply its own
// fallback (spec §4.4: the text strategy).
func (r *Registry) Detect(content, filename string) (Match, bool) {
	if filename != "" {
		if ext := extensionOf(filename); ext != "" {
			if s, ok := r.byExtension[ext]; ok {
				return Match{Strategy: s, Confidence: 1.0}, true
			}
		}
	}

	for _, s := range r.strategies {
		if s.Detect(content) {
			return Match{Strategy: s, Confidence: 0.8}, true
		}
	}

	return Match{}, false
}

// Strategies lists all registered strategies, in registration order.
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, len(r.strategies))
	copy(out, r.strategies)
	return out
}

func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}

// DefaultRender is the baseline LOD renderer shared by strategies that
// don't need semantic degradation: full content if it fits, otherwise a
// plain ellipsis truncation, or fold if budget can't even fit "...".
func DefaultRender(node *dom.Node, budget int) (string, bool) {
	if budget <= 0 {
		return "", false
	}
	content := node.Content
	runes := []rune(content)
	if len(runes) <= budget {
		return content, true
	}
	if budget <= 3 {
		return "", false
	}
	return string(runes[:budget-3]) + "...", true
}
