package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hcristescu/nub/internal/compress"
	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/dedup"
	"github.com/hcristescu/nub/internal/format"
	"github.com/hcristescu/nub/internal/limiter"
	"github.com/hcristescu/nub/internal/nuberr"
	"github.com/hcristescu/nub/internal/profiler"
	"github.com/hcristescu/nub/internal/reader"
	"github.com/hcristescu/nub/internal/score"
)

// options holds the resolved value of every CLI flag, populated from
// cobra.Command flags by root.go before run is called.
type options struct {
	File           string
	Shape          string
	Wrap           int
	Range          string
	LineNumbers    bool
	Grep           string
	Separator      string
	SeparatorRegex string
	Profile        bool
	Deduplicate    bool
	Limit          int
	FormatType     string
	Target         int
	Temperature    float64
	HasTemperature bool
}

// structuredExtensions are formats whose parser needs raw, unnumbered
// content (AST-based parsing breaks if line-number prefixes are injected
// first) -- mirrors the original's is_structured_format check.
var structuredExtensions = map[string]bool{
	"py": true, "pyw": true, "json": true, "yaml": true, "yml": true, "toml": true,
}

// readInput reads from opts.File, or stdin when no file was given.
func readInput(file string, cfg *config.Config) (reader.Result, error) {
	if file == "" {
		return reader.Stdin(os.Stdin)
	}
	return reader.File(file, cfg.IO.MaxFileSize, cfg.IO.HeadBytes, cfg.IO.TailBytes)
}

func isStructuredFormat(filename string) bool {
	if filename == "" {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return structuredExtensions[ext]
}

// run implements the full nub pipeline: read input, branch on --profile or
// directory input, wrap/number/range-select, compress, dedup, limit, print.
func run(out io.Writer, opts options, cfg *config.Config, registry *format.Registry) error {
	if opts.Profile {
		return runProfile(out, opts, registry)
	}

	result, err := readInput(opts.File, cfg)
	if err != nil {
		return nuberr.UserInput(fmt.Sprintf("error reading input: %s", opts.File), err)
	}

	if result.IsDirectory {
		return runDirectory(out, opts, cfg, result.Filepath)
	}

	if result.Content == "" {
		return nil
	}

	width, height, err := parseShape(opts.Shape)
	if err != nil {
		return nuberr.UserInput(err.Error(), nil)
	}

	content := result.Content
	usingSeparator := opts.Separator != "" || opts.SeparatorRegex != ""
	structured := isStructuredFormat(result.Filepath)

	if !structured {
		switch {
		case opts.Wrap > 0 && !usingSeparator:
			content = wrapContent(content, opts.Wrap, opts.LineNumbers)
		case opts.LineNumbers && !usingSeparator:
			content = addLineNumbers(content)
		}
	}

	rng, err := parseRange(opts.Range)
	if err != nil {
		return nuberr.UserInput(err.Error(), nil)
	}

	if rng.Set {
		hasAddresses := (opts.Wrap > 0 || opts.LineNumbers) && !usingSeparator && !structured
		if hasAddresses {
			content = extractFractionalRange(content, rng.Start, rng.End)
		} else {
			extracted, err := extractIntegerRange(content, int(rng.Start), int(rng.End))
			if err != nil {
				return nuberr.UserInput(err.Error(), nil)
			}
			content = extracted
		}
	}

	if content == "" {
		return nuberr.UserInput("no content after range selection", nil)
	}

	if opts.Target > 0 {
		side := int(math.Sqrt(float64(opts.Target)))
		if side < 1 {
			side = 1
		}
		width, height = side, side
	}

	if opts.HasTemperature {
		config.ApplyOverrides(cfg, map[string]any{"compression.temperature": opts.Temperature})
	}

	useSourceLines := structured && opts.LineNumbers

	cr := compressContent(compressParams{
		Content: content, Filename: result.Filepath, Width: width, Height: height,
		GrepPattern: opts.Grep, FormatType: opts.FormatType,
		Separator: opts.Separator, SeparatorRegex: opts.SeparatorRegex,
		Cfg: cfg, Registry: registry,
	})

	var output string
	if useSourceLines && cr.HasLines {
		lines := cr.Lines
		if opts.Deduplicate || cfg.Compression.DeduplicateNGrams {
			lines = rededupLines(lines)
		}
		output = formatWithLineNumbers(lines)
	} else {
		output = cr.Output
		if opts.Deduplicate || cfg.Compression.DeduplicateNGrams {
			deduped := dedup.Lines(strings.Split(output, "\n"))
			output = strings.Join(deduped, "\n")
		}
		if usingSeparator && opts.LineNumbers {
			output = addLineNumbers(output)
		}
	}

	if opts.Limit > 0 {
		output = limiter.Apply(output, opts.Limit)
	}

	fmt.Fprintln(out, output)
	return nil
}

// rededupLines applies 3-gram dedup to an OutputLine list's content while
// preserving each surviving line's source-line metadata.
func rededupLines(lines []compress.OutputLine) []compress.OutputLine {
	contents := make([]string, len(lines))
	for i, l := range lines {
		contents[i] = l.Content
	}
	deduped := dedup.Lines(contents)

	// dedup.Lines never changes line count (it collapses repeats into a
	// shorter in-place token, never drops a line), so indices still align.
	out := make([]compress.OutputLine, len(deduped))
	for i, c := range deduped {
		out[i] = compress.OutputLine{Content: c, SourceLine: lines[i].SourceLine, HasSource: lines[i].HasSource}
	}
	return out
}

func runProfile(out io.Writer, opts options, registry *format.Registry) error {
	if opts.File == "" {
		return nuberr.UserInput("--profile requires a file path (not stdin)", nil)
	}

	p, err := profiler.File(opts.File, registry)
	if err != nil {
		return nuberr.UserInput(fmt.Sprintf("error profiling file: %s", opts.File), err)
	}

	report := profiler.Report(p)
	if opts.Limit > 0 {
		report = limiter.Apply(report, opts.Limit)
	}

	fmt.Fprintln(out, report)
	return nil
}

func runDirectory(out io.Writer, opts options, cfg *config.Config, path string) error {
	width, height, err := parseShape(opts.Shape)
	if err != nil {
		return nuberr.UserInput(err.Error(), nil)
	}

	rng, err := parseRange(opts.Range)
	if err != nil {
		return nuberr.UserInput(err.Error(), nil)
	}

	folderStrategy := format.NewFolderStrategy()
	root, err := folderStrategy.ParsePath(path)
	if err != nil {
		return nuberr.UserInput(fmt.Sprintf("error parsing directory: %s", path), err)
	}

	target := width * height
	pattern := score.CompilePattern(opts.Grep)
	lines := compress.Tree(root, target, folderStrategy.Rank, pattern, cfg.Weights, cfg.Compression.Temperature, cfg.Compression.MinLineChars, folderStrategy.Render)

	if len(lines) > height {
		lines = lines[:height]
	}

	if rng.Set {
		startIdx := 0
		if rng.Start > 0 {
			startIdx = int(rng.Start) - 1
		}
		endIdx := len(lines)
		if rng.End > 0 && int(rng.End) < endIdx {
			endIdx = int(rng.End)
		}
		if startIdx < 0 {
			startIdx = 0
		}
		if startIdx > len(lines) {
			startIdx = len(lines)
		}
		if endIdx < startIdx {
			endIdx = startIdx
		}
		lines = lines[startIdx:endIdx]
	}

	contentLines := make([]string, len(lines))
	for i, l := range lines {
		contentLines[i] = l.Content
	}

	if opts.Deduplicate || cfg.Compression.DeduplicateNGrams {
		contentLines = dedup.Lines(contentLines)
	}

	output := strings.Join(contentLines, "\n")
	if opts.Limit > 0 {
		output = limiter.Apply(output, opts.Limit)
	}

	fmt.Fprintln(out, output)
	return nil
}
