package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// Path returns the config file path, respecting XDG_CONFIG_HOME, falling
// back to ~/.config/nub/config.toml.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nub", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "nub", "config.toml")
	}
	return filepath.Join(home, ".config", "nub", "config.toml")
}

// LoadFile reads a TOML config file at path and layers it over base via
// koanf's confmap provider: base supplies every key first, then only the
// keys explicitly present in the file overwrite them, so an absent section
// or field falls through to base rather than zeroing out. A missing file is
// non-fatal: base is returned unchanged. A malformed file (bad TOML syntax)
// is also non-fatal per spec §7 ("config" errors are silently absorbed) --
// the offending file is skipped entirely and a diagnostic is logged at
// Debug level so a user chasing an unexpected result can still find it. A
// field whose value has the wrong type is dropped by flattenRaw, so that
// field keeps its base value.
func LoadFile(path string, base *Config) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return base
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		slog.Debug("config: malformed TOML, using defaults for this file", "path", path, "error", err)
		return base
	}

	fileLayer := flattenRaw(raw)
	if len(fileLayer) == 0 {
		return base
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(flatten(base), "."), nil); err != nil {
		return base
	}
	if err := k.Load(confmap.Provider(fileLayer, "."), nil); err != nil {
		slog.Debug("config: failed to merge file layer", "path", path, "error", err)
		return base
	}

	warnUnknown(raw, path)
	return unflatten(k)
}

// knownSections maps each top-level TOML section to the field keys it may
// set, used both to build the file layer and to detect unrecognized keys.
var knownSections = map[string][]string{
	"weights":     {"positional", "grep", "topology"},
	"compression": {"default_budget", "min_line_chars", "temperature", "deduplicate_ngrams"},
	"text":        {"section_score", "line_score"},
	"io":          {"max_file_size", "head_bytes", "tail_bytes"},
}

// flattenRaw walks a TOML-decoded raw map and returns a flat, koanf-ready
// map containing only the fields that are explicitly present and of a
// usable type (a bool for deduplicate_ngrams, a number for every other
// field) -- absent or wrong-typed fields must never appear, or they'd
// shadow base with a zero value.
func flattenRaw(raw map[string]any) map[string]any {
	flat := make(map[string]any)
	for section, keys := range knownSections {
		sectionRaw, ok := raw[section].(map[string]any)
		if !ok {
			continue
		}
		for _, key := range keys {
			v, ok := sectionRaw[key]
			if !ok {
				continue
			}
			full := section + "." + key
			switch v.(type) {
			case bool:
				if full != keyDeduplicate {
					continue
				}
			case int64, float64:
				if full == keyDeduplicate {
					continue
				}
			default:
				continue
			}
			flat[full] = v
		}
	}
	return flat
}

// warnUnknown logs any top-level section or field in raw that knownSections
// doesn't recognize, so a typo in a user's config doesn't fail silently
// without a trace.
func warnUnknown(raw map[string]any, source string) {
	for section, sectionVal := range raw {
		keys, known := knownSections[section]
		if !known {
			slog.Debug("config: unknown section ignored", "source", source, "section", section)
			continue
		}
		sectionRaw, ok := sectionVal.(map[string]any)
		if !ok {
			continue
		}
		for key := range sectionRaw {
			if !contains(keys, key) {
				slog.Debug("config: unknown key ignored", "source", source, "section", section, "key", key)
			}
		}
	}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// unflatten reads every Config field back out of k, coercing koanf's
// generic numeric types (TOML integers decode as int64 even for fields that
// are logically `int`) to the struct's declared field types.
func unflatten(k *koanf.Koanf) *Config {
	return &Config{
		Weights: Weights{
			Positional: k.Float64(keyWPositional),
			Grep:       k.Float64(keyWGrep),
			Topology:   k.Float64(keyWTopology),
		},
		Compression: Compression{
			DefaultBudget:     k.Int(keyDefaultBudget),
			MinLineChars:      k.Int(keyMinLineChars),
			Temperature:       k.Float64(keyTemperature),
			DeduplicateNGrams: k.Bool(keyDeduplicate),
		},
		Text: Text{
			SectionScore: k.Float64(keySectionScore),
			LineScore:    k.Float64(keyLineScore),
		},
		IO: IO{
			MaxFileSize: k.Int64(keyMaxFileSize),
			HeadBytes:   k.Int64(keyHeadBytes),
			TailBytes:   k.Int64(keyTailBytes),
		},
	}
}
