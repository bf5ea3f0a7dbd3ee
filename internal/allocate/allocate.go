// Package allocate distributes a character budget across a set of scored
// sibling nodes (spec §4.3): a temperature-controlled softmax allocation
// with remainder distribution and excess-budget redistribution, and a
// U-curve greedy fallback for dense, low-budget flat lists.
package allocate

import (
	"math"
	"sort"

	"github.com/hcristescu/nub/internal/dom"
)

// Scored pairs a node with its importance score and the chars allocated to
// it by Softmax or ByUCurve. Allocated starts at 0 until an allocator sets
// it.
type Scored struct {
	Node      *dom.Node
	Score     float64
	Allocated int
}

// DenseFlatThreshold gates the U-curve fallback: it
// kicks in when there are more than DenseFlatThreshold children and the
// average per-child budget would fall below the configured min-line-chars.
const DenseFlatThreshold = 50

// UseUCurve reports whether the dense-flat-list U-curve fallback (spec
// §4.3) should be used instead of softmax allocation, given the number of
// children and the budget available to split among them.
func UseUCurve(numChildren int, remainingBudget int, minLineChars int) bool {
	if numChildren == 0 {
		return false
	}
	avgPerChild := float64(remainingBudget) / float64(numChildren)
	return avgPerChild < float64(minLineChars) && numChildren > DenseFlatThreshold
}

// Softmax distributes totalBudget across scored proportionally to each
// node's score, via a temperature-scaled softmax, then hands any rounding
// remainder to the top scorers one char at a time. temperature <= 0
// collapses to a hard argmax (winner take all, ties all win).
func Softmax(scored []Scored, totalBudget int, temperature float64) {
	if len(scored) == 0 || totalBudget <= 0 {
		for i := range scored {
			scored[i].Allocated = 0
		}
		return
	}

	maxScore := scored[0].Score
	for _, sn := range scored {
		if sn.Score > maxScore {
			maxScore = sn.Score
		}
	}

	expScores := make([]float64, len(scored))
	if temperature <= 0 {
		for i, sn := range scored {
			if sn.Score == maxScore {
				expScores[i] = 1.0
			}
		}
	} else {
		for i, sn := range scored {
			expScores[i] = math.Exp((sn.Score - maxScore) / temperature)
		}
	}

	var totalExp float64
	for _, e := range expScores {
		totalExp += e
	}

	allocated := 0
	for i := range scored {
		chars := int(expScores[i] / totalExp * float64(totalBudget))
		scored[i].Allocated = chars
		allocated += chars
	}

	remainder := totalBudget - allocated
	if remainder <= 0 {
		return
	}

	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Score > scored[order[b]].Score
	})
	for i := 0; i < remainder; i++ {
		scored[order[i%len(order)]].Allocated++
	}
}

// RedistributeExcess reclaims budget allocated to leaf nodes beyond their
// own content length and hands it to other leaves (highest score first)
// that could still use more, up to their content length. Container nodes
// are skipped in both directions: they need their allocation for children,
// not their own (often empty) content. contentLen must return the rune
// length of a node's own content.
func RedistributeExcess(scored []Scored, contentLen func(*dom.Node) int) {
	excess := 0
	for i := range scored {
		sn := &scored[i]
		if len(sn.Node.Children) > 0 {
			continue
		}
		length := contentLen(sn.Node)
		if sn.Allocated > length {
			excess += sn.Allocated - length
			sn.Allocated = length
		}
	}
	if excess <= 0 {
		return
	}

	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Score > scored[order[b]].Score
	})

	for _, idx := range order {
		if excess <= 0 {
			break
		}
		sn := &scored[idx]
		if len(sn.Node.Children) > 0 {
			continue
		}
		length := contentLen(sn.Node)
		if sn.Allocated < length {
			need := length - sn.Allocated
			give := need
			if excess < give {
				give = excess
			}
			sn.Allocated += give
			excess -= give
		}
	}
}

// LineBudget computes chars-per-line for numLines lines sharing
// totalBudget: aim for minCharsPerLine, extend up to 2x that when budget
// allows, but never exceed what's affordable.
func LineBudget(numLines, totalBudget, minCharsPerLine int) int {
	if numLines == 0 {
		return 0
	}
	affordable := totalBudget / numLines
	maxPerLine := minCharsPerLine * 2
	if affordable < maxPerLine {
		return affordable
	}
	return maxPerLine
}

// ByUCurve greedily selects the highest-scoring nodes (already carrying
// their U-curve positional score) that fit within budget, per spec §4.3's
// dense-flat-list fallback. contentLen returns a node's own content
// length; minLinesTarget is the minimum number of lines to aim for when
// affordable. Unselected nodes are left with Allocated == 0.
func ByUCurve(scored []Scored, budget int, minCharsPerLine, minLinesTarget int, contentLen func(*dom.Node) int) []Scored {
	if len(scored) == 0 || budget <= 0 {
		return nil
	}

	ordered := make([]Scored, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Score > ordered[b].Score
	})

	maxAffordable := budget / minCharsPerLine
	floor := minLinesTarget
	if maxAffordable > floor {
		floor = maxAffordable
	}
	targetLines := len(ordered)
	if floor < targetLines {
		targetLines = floor
	}

	charsPerLine := LineBudget(targetLines, budget, minCharsPerLine)

	var selected []Scored
	remaining := budget
	for i := range ordered {
		if remaining <= 0 {
			break
		}
		length := contentLen(ordered[i].Node)

		allocated := length
		if charsPerLine < allocated {
			allocated = charsPerLine
		}
		if remaining < allocated {
			allocated = remaining
		}

		isHighPriority := float64(i) < float64(len(ordered))*0.1
		isCompleteLine := allocated == length

		minThreshold := 20
		if isHighPriority || isCompleteLine {
			minThreshold = 1
		}

		if allocated >= minThreshold {
			sn := ordered[i]
			sn.Allocated = allocated
			selected = append(selected, sn)
			remaining -= allocated
		}
	}

	return selected
}
