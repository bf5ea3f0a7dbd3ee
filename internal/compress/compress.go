// Package compress implements the recursive hierarchical compressor (spec
// §4.5): the central routine that walks a DOM tree, scores and allocates
// budget to each level, renders leaves through a format-specific
// progressive level-of-detail renderer, folds nodes whose allocation was
// too small to render, and enforces the budget as a final safety net.
package compress

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hcristescu/nub/internal/allocate"
	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dom"
	"github.com/hcristescu/nub/internal/score"
	"github.com/hcristescu/nub/internal/truncate"
)

// OutputLine is one line of compressed output with an optional source
// location, carried through for downstream line-numbering.
type OutputLine struct {
	Content    string
	SourceLine int
	HasSource  bool
}

// Ranker assigns a format-specific topology score to a child node (the T
// term of the importance-score formula).
type Ranker func(node *dom.Node) float64

// Renderer renders a leaf node's content at a given char budget, returning
// the rendered string, or (for when max_chars is too small to usefully
// render) a false ok to signal "fold this node".
type Renderer func(node *dom.Node, maxChars int) (string, bool)

// DefaultRenderer truncates a leaf's content to maxChars with no semantic
// degradation, the fallback used when a format strategy supplies no LOD
// renderer of its own.
func DefaultRenderer(node *dom.Node, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return "", false
	}
	return truncate.Truncate(node.Content, maxChars, node.Atomic), true
}

const foldMarkerSuffix = " more...]"

func foldMarker(count int) string {
	return fmt.Sprintf("[...%d%s", count, foldMarkerSuffix)
}

// Tree recursively compresses root into a budget of budget chars, per spec
// §4.5. pattern may be nil (no relevance filter). renderer may be nil to
// use DefaultRenderer.
func Tree(root *dom.Node, budget int, ranker Ranker, pattern *regexp.Regexp, weights config.Weights, temperature float64, minLineChars int, renderer Renderer) []OutputLine {
	if renderer == nil {
		renderer = DefaultRenderer
	}

	if len(root.Children) == 0 {
		if budget <= 0 {
			return nil
		}
		content, ok := renderer(root, budget)
		if !ok {
			return nil
		}
		return []OutputLine{{Content: content, SourceLine: root.SourceLine, HasSource: root.SourceLine != 0}}
	}

	var output []OutputLine
	remaining := budget

	if strings.TrimSpace(root.Content) != "" {
		contentLen := len([]rune(root.Content))
		if contentLen <= remaining {
			output = append(output, OutputLine{Content: root.Content, SourceLine: root.SourceLine, HasSource: root.SourceLine != 0})
			remaining -= contentLen
		}
	}

	children := root.Children
	scored := make([]allocate.Scored, len(children))
	for i, child := range children {
		topo := ranker(child)
		s := score.Importance(child, i, len(children), topo, pattern, weights)
		scored[i] = allocate.Scored{Node: child, Score: s}
	}

	contentLen := func(n *dom.Node) int { return len([]rune(n.Content)) }

	var selected []allocate.Scored
	if allocate.UseUCurve(len(children), remaining, minLineChars) {
		chosen := allocate.ByUCurve(scored, remaining, minLineChars, 20, contentLen)
		chosenSet := make(map[*dom.Node]bool, len(chosen))
		for _, sn := range chosen {
			chosenSet[sn.Node] = true
		}
		for i := range scored {
			if !chosenSet[scored[i].Node] {
				scored[i].Allocated = 0
			} else {
				for _, c := range chosen {
					if c.Node == scored[i].Node {
						scored[i].Allocated = c.Allocated
					}
				}
			}
		}
		selected = scored
	} else {
		allocate.Softmax(scored, remaining, temperature)
		allocate.RedistributeExcess(scored, contentLen)
		selected = scored
	}

	foldedCount := 0
	for _, sn := range selected {
		var childLines []OutputLine

		if len(sn.Node.Children) > 0 {
			childLines = Tree(sn.Node, sn.Allocated, ranker, pattern, weights, temperature, minLineChars, renderer)
			if len(childLines) == 0 {
				foldedCount++
				continue
			}
		} else {
			rendered, ok := renderer(sn.Node, sn.Allocated)
			if !ok {
				foldedCount++
				continue
			}
			childLines = []OutputLine{{Content: rendered, SourceLine: sn.Node.SourceLine, HasSource: sn.Node.SourceLine != 0}}
		}

		if foldedCount > 0 {
			output = append(output, OutputLine{Content: foldMarker(foldedCount)})
			foldedCount = 0
		}
		output = append(output, childLines...)
	}
	if foldedCount > 0 {
		output = append(output, OutputLine{Content: foldMarker(foldedCount)})
	}

	merged := mergeFoldMarkers(output)
	return enforceBudget(merged, budget)
}

// mergeFoldMarkers coalesces consecutive fold markers (both the
// "[...N more...]" and "[N items, budget too low]" shapes) into a single
// combined marker.
func mergeFoldMarkers(lines []OutputLine) []OutputLine {
	if len(lines) == 0 {
		return lines
	}

	var result []OutputLine
	pending := 0

	flush := func() {
		if pending > 0 {
			result = append(result, OutputLine{Content: foldMarker(pending)})
			pending = 0
		}
	}

	for _, line := range lines {
		if count, ok := parseFoldCount(line.Content); ok {
			pending += count
			continue
		}
		flush()
		result = append(result, line)
	}
	flush()

	nonMarker := 0
	for _, line := range result {
		if !isFoldMarker(line.Content) {
			nonMarker++
		}
	}
	if nonMarker == 0 && len(result) > 0 {
		total := 0
		for _, line := range result {
			if count, ok := parseFoldCount(line.Content); ok {
				total += count
			}
		}
		return []OutputLine{{Content: fmt.Sprintf("[%d items, budget too low]", total)}}
	}

	return result
}

func isFoldMarker(content string) bool {
	return strings.HasPrefix(content, "[...") && strings.HasSuffix(content, foldMarkerSuffix)
}

func parseFoldCount(content string) (int, bool) {
	if strings.HasPrefix(content, "[...") && strings.HasSuffix(content, foldMarkerSuffix) {
		inner := content[4 : len(content)-len(foldMarkerSuffix)]
		var n int
		if _, err := fmt.Sscanf(inner, "%d", &n); err == nil {
			return n, true
		}
		return 0, false
	}
	if strings.HasPrefix(content, "[") && strings.HasSuffix(content, " items, budget too low]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(content, "["), " items, budget too low]")
		var n int
		if _, err := fmt.Sscanf(inner, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

const budgetTruncatedMarker = "...[truncated to fit budget]"

// enforceBudget is the final safety net (spec §4.5): fold markers and
// per-node ellipsis can push total output slightly over budget; this trims
// lines from the end until the total fits, appending a truncation marker
// if there's room for one.
func enforceBudget(lines []OutputLine, budget int) []OutputLine {
	if len(lines) == 0 {
		return lines
	}

	total := 0
	for _, l := range lines {
		total += len([]rune(l.Content))
	}
	if total <= budget {
		return lines
	}

	var result []OutputLine
	used := 0
	markerAdded := false

	for _, line := range lines {
		reserve := 0
		if !markerAdded {
			reserve = len([]rune(budgetTruncatedMarker))
		}
		length := len([]rune(line.Content))

		if used+length+reserve <= budget {
			result = append(result, line)
			used += length
			continue
		}

		if used+len([]rune(budgetTruncatedMarker)) <= budget {
			result = append(result, OutputLine{Content: budgetTruncatedMarker})
			markerAdded = true
		}
		break
	}

	return result
}
