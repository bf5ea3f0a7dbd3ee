package cli

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hcristescu/nub/internal/compress"
	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dom"
	"github.com/hcristescu/nub/internal/format"
	"github.com/hcristescu/nub/internal/score"
	"github.com/hcristescu/nub/internal/truncate"
)

// compressParams bundles the inputs to compressContent, mirroring the
// original compress() function's parameter list.
type compressParams struct {
	Content        string
	Filename       string
	Width, Height  int
	GrepPattern    string
	FormatType     string
	Separator      string
	SeparatorRegex string
	Cfg            *config.Config
	Registry       *format.Registry
}

// compressResult carries both the flattened string output and (when the
// caller needs source line numbers, i.e. structured formats) the
// structured OutputLine list.
type compressResult struct {
	Output  string
	Lines   []compress.OutputLine
	HasLines bool
}

// compressContent runs geometry-based compression: either the standard
// line-based recursive compressor, or — when a custom separator is in
// play — the chunk-based path that scores and selects whole chunks rather
// than recursing into them.
func compressContent(p compressParams) compressResult {
	pattern := score.CompilePattern(p.GrepPattern)
	temperature := p.Cfg.Compression.Temperature

	usingCustomSeparator := p.Separator != "" || p.SeparatorRegex != ""

	var strategy format.Strategy
	if usingCustomSeparator {
		strategy = format.NewCustomSeparatorStrategy(p.Cfg.Text, p.Separator, p.SeparatorRegex)
	} else {
		strategy = getStrategy(p.Registry, p.Content, p.Filename, p.FormatType)
	}

	root := strategy.Parse(p.Content)
	if len(root.Children) == 0 && strings.TrimSpace(root.Content) == "" {
		return compressResult{Output: ""}
	}

	if usingCustomSeparator {
		return compressResult{Output: compressChunks(root.Children, p.Height, p.Width, strategy, pattern, p.Cfg.Weights)}
	}

	newlineReserve := p.Height - 1
	if newlineReserve < 0 {
		newlineReserve = 0
	}
	contentBudget := p.Width*p.Height - newlineReserve
	if contentBudget < 1 {
		contentBudget = 1
	}

	lines := compress.Tree(root, contentBudget, strategy.Rank, pattern, p.Cfg.Weights, temperature, p.Cfg.Compression.MinLineChars, strategy.Render)

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Content)
	}
	return compressResult{Output: b.String(), Lines: lines, HasLines: true}
}

// compressChunks scores each top-level chunk with the same importance
// formula as the recursive compressor, keeps the top `height` chunks by
// score (then restores document order), and flattens each surviving chunk
// to a single line of at most `width` chars.
func compressChunks(chunks []*dom.Node, height, width int, strategy format.Strategy, pattern *regexp.Regexp, weights config.Weights) string {
	type scoredChunk struct {
		node  *dom.Node
		index int
		score float64
	}

	scored := make([]scoredChunk, len(chunks))
	for i, chunk := range chunks {
		topo := strategy.Rank(chunk)
		s := score.Importance(chunk, i, len(chunks), topo, pattern, weights)
		scored[i] = scoredChunk{node: chunk, index: i, score: s}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > height {
		scored = scored[:height]
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].index < scored[j].index })

	lines := make([]string, 0, len(scored))
	for _, sc := range scored {
		flattened := flattenChunk(sc.node.Content)
		lines = append(lines, truncate.Truncate(flattened, width, false))
	}

	return strings.Join(lines, "\n")
}

// flattenChunk collapses a chunk's content to a single line: blank lines
// dropped, remaining lines trimmed and space-joined.
func flattenChunk(content string) string {
	var parts []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// formatWithLineNumbers renders OutputLines with their source line number
// when known, else a sequential fallback.
func formatWithLineNumbers(lines []compress.OutputLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		num := i + 1
		if line.HasSource {
			num = line.SourceLine
		}
		out[i] = fmt.Sprintf("%d: %s", num, line.Content)
	}
	return strings.Join(out, "\n")
}
