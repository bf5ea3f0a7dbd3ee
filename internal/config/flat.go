package config

// flatKeys are the dotted koanf keys every layer (defaults, file, env)
// merges through, one per Config field, mirroring the TOML tags in
// types.go.
const (
	keyWPositional   = "weights.positional"
	keyWGrep         = "weights.grep"
	keyWTopology     = "weights.topology"
	keyDefaultBudget = "compression.default_budget"
	keyMinLineChars  = "compression.min_line_chars"
	keyTemperature   = "compression.temperature"
	keyDeduplicate   = "compression.deduplicate_ngrams"
	keySectionScore  = "text.section_score"
	keyLineScore     = "text.line_score"
	keyMaxFileSize   = "io.max_file_size"
	keyHeadBytes     = "io.head_bytes"
	keyTailBytes     = "io.tail_bytes"
)

// flatten converts cfg into a flat, koanf-compatible map keyed by the
// constants above -- the shape confmap.Provider expects for a layer.
func flatten(cfg *Config) map[string]any {
	return map[string]any{
		keyWPositional:   cfg.Weights.Positional,
		keyWGrep:         cfg.Weights.Grep,
		keyWTopology:     cfg.Weights.Topology,
		keyDefaultBudget: cfg.Compression.DefaultBudget,
		keyMinLineChars:  cfg.Compression.MinLineChars,
		keyTemperature:   cfg.Compression.Temperature,
		keyDeduplicate:   cfg.Compression.DeduplicateNGrams,
		keySectionScore:  cfg.Text.SectionScore,
		keyLineScore:     cfg.Text.LineScore,
		keyMaxFileSize:   cfg.IO.MaxFileSize,
		keyHeadBytes:     cfg.IO.HeadBytes,
		keyTailBytes:     cfg.IO.TailBytes,
	}
}
