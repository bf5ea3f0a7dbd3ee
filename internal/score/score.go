// Package score implements the importance scoring function (spec §4.2):
// S = w_p*P(i,n) + w_g*G(node) + w_t*T(node), fusing a positional U-curve, a
// relevance (grep) match, and a format-supplied topology score.
package score

import (
	"math"
	"regexp"

	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dom"
)

// Positional computes the U-curve P(i,n): 1 at both ends, 0 in the middle,
// per spec §4.2. For n <= 1 it is defined as 1.
func Positional(index, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	normalized := float64(index) / float64(total-1)
	return (math.Cos(2*math.Pi*normalized) + 1) / 2
}

// CompilePattern compiles pattern for use with Grep/ContainsMatch. A
// syntactically invalid pattern is absorbed per spec §4.2/§7: the returned
// regexp is nil, and every match call treats it as non-matching rather than
// propagating the error.
func CompilePattern(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// Grep returns 1.0 if content matches pattern, 0.0 otherwise (including when
// pattern is nil, meaning "no pattern" or "invalid pattern").
func Grep(content string, pattern *regexp.Regexp) float64 {
	if pattern == nil {
		return 0.0
	}
	if pattern.MatchString(content) {
		return 1.0
	}
	return 0.0
}

// ContainsMatch reports whether node or any descendant matches pattern.
func ContainsMatch(node *dom.Node, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return false
	}
	found := false
	node.DepthFirst(func(n *dom.Node) bool {
		if pattern.MatchString(n.Content) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Importance computes S for a child node at position index among total
// siblings, given its format-assigned topology score. For container nodes
// (those with children), the grep term checks the whole subtree rather than
// just the node's own (often empty) content.
func Importance(node *dom.Node, index, total int, topology float64, pattern *regexp.Regexp, w config.Weights) float64 {
	p := Positional(index, total)

	var g float64
	if len(node.Children) > 0 {
		if ContainsMatch(node, pattern) {
			g = 1.0
		}
	} else {
		g = Grep(node.Content, pattern)
	}

	return w.Positional*p + w.Grep*g + w.Topology*topology
}
