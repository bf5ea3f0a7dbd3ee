package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// Environment variable names, per spec §6.
const (
	EnvWPositional      = "NUB_W_POSITIONAL"
	EnvWGrep            = "NUB_W_GREP"
	EnvWTopology        = "NUB_W_TOPOLOGY"
	EnvDefaultBudget    = "NUB_DEFAULT_BUDGET"
	EnvMinLineChars     = "NUB_MIN_LINE_CHARS"
	EnvMaxFileSize      = "NUB_MAX_FILE_SIZE"
	EnvHeadBytes        = "NUB_HEAD_BYTES"
	EnvTailBytes        = "NUB_TAIL_BYTES"
	EnvTemperature      = "NUB_TEMPERATURE"
	EnvTextSectionScore = "NUB_TEXT_SECTION_SCORE"
	EnvTextLineScore    = "NUB_TEXT_LINE_SCORE"
	EnvDeduplicate      = "NUB_DEDUPLICATE"
)

// ApplyEnv overrides cfg in place from NUB_* environment variables, layered
// over cfg's current values via koanf's confmap provider -- same
// present-keys-only merge LoadFile uses for the file layer. A variable that
// is set but fails to parse is skipped silently (per spec §7, a bad env
// value falls back to the existing value rather than failing the process).
func ApplyEnv(cfg *Config) {
	envLayer := flattenEnv()
	if len(envLayer) == 0 {
		return
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(flatten(cfg), "."), nil); err != nil {
		return
	}
	if err := k.Load(confmap.Provider(envLayer, "."), nil); err != nil {
		return
	}

	*cfg = *unflatten(k)
}

// flattenEnv reads every NUB_* variable that is both set and valid into a
// flat, koanf-ready map. Unset or unparseable variables are simply absent,
// so they never shadow a prior layer's value.
func flattenEnv() map[string]any {
	flat := make(map[string]any)
	if v, ok := parseFloat(EnvWPositional); ok {
		flat[keyWPositional] = v
	}
	if v, ok := parseFloat(EnvWGrep); ok {
		flat[keyWGrep] = v
	}
	if v, ok := parseFloat(EnvWTopology); ok {
		flat[keyWTopology] = v
	}
	if v, ok := parseInt(EnvDefaultBudget); ok {
		flat[keyDefaultBudget] = v
	}
	if v, ok := parseInt(EnvMinLineChars); ok {
		flat[keyMinLineChars] = v
	}
	if v, ok := parseFloat(EnvTemperature); ok {
		flat[keyTemperature] = v
	}
	if v, ok := parseBool(EnvDeduplicate); ok {
		flat[keyDeduplicate] = v
	}
	if v, ok := parseFloat(EnvTextSectionScore); ok {
		flat[keySectionScore] = v
	}
	if v, ok := parseFloat(EnvTextLineScore); ok {
		flat[keyLineScore] = v
	}
	if v, ok := parseInt64(EnvMaxFileSize); ok {
		flat[keyMaxFileSize] = v
	}
	if v, ok := parseInt64(EnvHeadBytes); ok {
		flat[keyHeadBytes] = v
	}
	if v, ok := parseInt64(EnvTailBytes); ok {
		flat[keyTailBytes] = v
	}
	return flat
}

func parseFloat(name string) (float64, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

func parseInt(name string) (int, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func parseInt64(name string) (int64, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}

// parseBool accepts "true", "1", "yes" (case-insensitive) as true and
// anything else as false, matching spec §6's NUB_DEDUPLICATE contract
// exactly (not Go's stricter strconv.ParseBool).
func parseBool(name string) (bool, bool) {
	raw, set := os.LookupEnv(name)
	if !set {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true, true
	default:
		return false, true
	}
}
