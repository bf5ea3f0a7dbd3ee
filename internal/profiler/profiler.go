// Package profiler implements the --profile reporter: a read-only
// collaborator that inspects a file and reports enough about its shape
// (size, token cost, detected format, topology distribution) for a caller
// to pick good --shape/--type flags, without running the compression
// pipeline itself.
package profiler

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/zeebo/xxh3"

	"github.com/hcristescu/nub/internal/format"
)

// encodingName is the BPE encoding used for token estimates, matching the
// teacher's tokenizer package default.
const encodingName = "cl100k_base"

// Profile is the structured result of profiling one file.
type Profile struct {
	Path         string
	SizeBytes    int64
	LineCount    int
	ContentHash  string
	TokenCount   int
	Format       string
	Confidence   float64
	TopologyTop  []ScoredChild
}

// ScoredChild is a top-level child's name and topology score, used to show
// the format strategy's ranking distribution.
type ScoredChild struct {
	Name  string
	Type  string
	Score float64
}

// File profiles the file at path: size, line count, content hash, token
// estimate, and detected format with its top-level topology distribution.
// path must name a regular file: the caller in internal/cli rejects an
// empty path (stdin) with "--profile requires a file path", and a
// directory path makes the read here fail with an error.
func File(path string, registry *format.Registry) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	info, err := os.Stat(path)
	if err != nil {
		return Profile{}, fmt.Errorf("stat %s: %w", path, err)
	}

	p := Profile{
		Path:        path,
		SizeBytes:   info.Size(),
		LineCount:   strings.Count(content, "\n") + 1,
		ContentHash: hash(data),
		TokenCount:  countTokens(content),
	}

	match, ok := registry.Detect(content, path)
	if !ok {
		p.Format = "text"
		p.Confidence = 0
		return p, nil
	}
	p.Format = match.Strategy.Name()
	p.Confidence = match.Confidence

	root := match.Strategy.Parse(content)
	for _, child := range root.Children {
		name := child.Name
		if name == "" {
			name = child.Type
		}
		p.TopologyTop = append(p.TopologyTop, ScoredChild{
			Name:  name,
			Type:  child.Type,
			Score: match.Strategy.Rank(child),
		})
	}
	sort.SliceStable(p.TopologyTop, func(i, j int) bool {
		return p.TopologyTop[i].Score > p.TopologyTop[j].Score
	})

	return p, nil
}

// hash returns a hex-encoded xxh3 digest of data, used as a cheap
// change-detection fingerprint across repeated profiling runs (grounded on
// the teacher's FileDescriptor.ContentHash, which serves the same purpose).
func hash(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}

// countTokens returns text's exact BPE token count under cl100k_base, or 0
// if the encoding can't be loaded (profiling degrades gracefully, it never
// fails the whole report over a missing tokenizer cache).
func countTokens(text string) int {
	if text == "" {
		return 0
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

// Report renders p as a human-readable text report, the --profile output.
func Report(p Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", p.Path)
	fmt.Fprintf(&b, "Size: %d bytes, %d lines\n", p.SizeBytes, p.LineCount)
	fmt.Fprintf(&b, "Hash: %s\n", p.ContentHash)
	fmt.Fprintf(&b, "Tokens (cl100k_base): %d\n", p.TokenCount)
	fmt.Fprintf(&b, "Detected format: %s (confidence %.1f)\n", p.Format, p.Confidence)

	if len(p.TopologyTop) > 0 {
		b.WriteString("Top-level topology scores:\n")
		limit := len(p.TopologyTop)
		if limit > 20 {
			limit = 20
		}
		for _, c := range p.TopologyTop[:limit] {
			fmt.Fprintf(&b, "  %-30s %-12s %.2f\n", c.Name, c.Type, c.Score)
		}
		if len(p.TopologyTop) > limit {
			fmt.Fprintf(&b, "  ... %d more\n", len(p.TopologyTop)-limit)
		}
	}

	return b.String()
}
