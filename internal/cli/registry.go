package cli

import (
	"github.com/hcristescu/nub/internal/config"
	"github.com/hcristescu/nub/internal/format"
)

// buildRegistry registers every format strategy nub ships, mirroring the
// original CLI's side-effect imports (formats/folder, markdown, mindmap,
// python, text) plus the three stub strategies. The folder strategy is
// deliberately not registered here: it is never reached via the registry's
// Detect/ByExtension paths, only invoked directly for directory input (see
// run.go), exactly like the original's dedicated FolderStrategy() call.
func buildRegistry(textCfg config.Text) *format.Registry {
	r := format.NewRegistry()
	r.Register(format.NewMarkdownStrategy())
	r.Register(format.NewMindMapStrategy(textCfg))
	r.Register(format.NewPythonStrategy())
	r.Register(format.NewTextStrategy(textCfg))
	r.Register(format.NewCSVStrategy())
	r.Register(format.NewJSONStrategy())
	r.Register(format.NewConversationStrategy())
	return r
}

// getStrategy resolves a format strategy via --type override, then content
// detection, then falls back to text, matching the original's
// override-detect-fallback precedence exactly.
func getStrategy(r *format.Registry, content, filename, forceType string) format.Strategy {
	if forceType != "" {
		if s, ok := r.ByName(forceType); ok {
			return s
		}
		if s, ok := r.ByExtension(forceType); ok {
			return s
		}
	}

	if match, ok := r.Detect(content, filename); ok {
		return match.Strategy
	}

	if s, ok := r.ByName("text"); ok {
		return s
	}
	return format.NewTextStrategy(textCfgFallback)
}

var textCfgFallback = config.Text{SectionScore: 0.6, LineScore: 0.5}
