// Package config resolves nub's tunable parameters from four layers, lowest
// to highest precedence: built-in defaults, a TOML config file, NUB_*
// environment variables, and CLI flags. The resolved Config is loaded once
// per process and is immutable afterward; internal/cli applies flag overrides
// on top of it per invocation.
package config

// Weights are the importance-score weights for S = w_p*P + w_g*G + w_t*T.
type Weights struct {
	Positional float64 `toml:"positional"`
	Grep       float64 `toml:"grep"`
	Topology   float64 `toml:"topology"`
}

// Compression holds the core compression tunables.
type Compression struct {
	DefaultBudget      int     `toml:"default_budget"`
	MinLineChars       int     `toml:"min_line_chars"`
	Temperature        float64 `toml:"temperature"`
	DeduplicateNGrams  bool    `toml:"deduplicate_ngrams"`
}

// Text holds topology scores used by the text and mindmap format strategies.
type Text struct {
	SectionScore float64 `toml:"section_score"`
	LineScore    float64 `toml:"line_score"`
}

// IO holds large-file handling tunables for internal/reader.
type IO struct {
	MaxFileSize int64 `toml:"max_file_size"`
	HeadBytes   int64 `toml:"head_bytes"`
	TailBytes   int64 `toml:"tail_bytes"`
}

// Config is the fully resolved, root configuration record.
type Config struct {
	Weights     Weights     `toml:"weights"`
	Compression Compression `toml:"compression"`
	Text        Text        `toml:"text"`
	IO          IO          `toml:"io"`
}
