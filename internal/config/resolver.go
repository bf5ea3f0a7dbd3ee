package config

import (
	"sync"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

var (
	mu       sync.Mutex
	cached   *Config
	hasCache bool
)

// Get returns the process-wide Config instance, loading it on first call:
// defaults, then the TOML config file (if present), then environment
// variable overrides. The instance is cached and immutable after the first
// call -- CLI flag overrides are applied by the caller on a copy (see
// ApplyOverrides), never on the cached instance.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()
	if hasCache {
		return cached
	}
	cfg := Default()
	cfg = LoadFile(Path(), cfg)
	ApplyEnv(cfg)
	cached = cfg
	hasCache = true
	return cached
}

// Reset clears the cached Config instance so the next Get call reloads from
// scratch. Intended for test isolation only -- production code should never
// need to call this since the process loads configuration exactly once.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
	hasCache = false
}

// Clone returns a shallow copy of cfg, safe for a caller to mutate (e.g. to
// layer CLI flag overrides on top of the shared instance) without affecting
// the cached instance returned by Get.
func Clone(cfg *Config) *Config {
	c := *cfg
	return &c
}

// ApplyOverrides layers overrides -- keyed by the same dotted names as
// flatten/unflatten ("compression.temperature", "weights.grep", etc.) --
// on top of cfg in place, the highest-precedence layer in the
// defaults < file < env < flags chain. This is how internal/cli threads a
// hidden CLI flag (e.g. the legacy --temperature override) through the same
// koanf merge the file and env layers use, rather than poking the struct
// field directly.
func ApplyOverrides(cfg *Config, overrides map[string]any) {
	if len(overrides) == 0 {
		return
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(flatten(cfg), "."), nil); err != nil {
		return
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return
	}

	*cfg = *unflatten(k)
}
