package format

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hcristescu/nub/internal/dom"
)

// DefaultSkipPatterns are the common cache/build-artifact directories
// skipped during a folder walk unless overridden.
var DefaultSkipPatterns = []string{
	"__pycache__", ".git", ".svn", ".hg", "node_modules", ".venv", "venv",
	".tox", ".mypy_cache", ".pytest_cache", ".ruff_cache", "__pypackages__",
	".eggs", "*.egg-info", ".DS_Store",
}

// BinaryExtensions are file extensions skipped for content preview and
// rendered as an opaque "[binary]" marker instead.
var BinaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".webp": true, ".bmp": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true, ".rar": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".pyc": true, ".pyo": true, ".class": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp3": true, ".mp4": true, ".wav": true, ".ogg": true, ".webm": true, ".avi": true, ".mov": true,
	".sqlite": true, ".db": true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FolderStrategy renders a directory tree as navigable content: files show
// head-truncated single-line previews, directories show structure.
// Unlike the other strategies, folders are parsed from a filesystem path
// (ParsePath) rather than from in-memory content (the interface's Parse
// exists only to satisfy Strategy and returns an empty root).
type FolderStrategy struct {
	MaxDepth       int
	FollowSymlinks bool
	SkipPatterns   []string
	PreviewChars   int
	MaxReadBytes   int64
	Indent         string

	// UseGitignore additionally honors .gitignore files found under the
	// walked root (spec §9 supplement, off by default to match the
	// original's behavior exactly unless opted in).
	UseGitignore bool
	gitignore    *gitignoreMatcher
}

// NewFolderStrategy builds a folder strategy with the original's defaults.
func NewFolderStrategy() *FolderStrategy {
	return &FolderStrategy{
		MaxDepth:     10,
		SkipPatterns: DefaultSkipPatterns,
		PreviewChars: 200,
		MaxReadBytes: 10240,
		Indent:       "  ",
	}
}

func (s *FolderStrategy) Name() string         { return "folder" }
func (s *FolderStrategy) Extensions() []string { return nil }
func (s *FolderStrategy) Detect(string) bool   { return false }

// Parse ignores its content and returns an empty document root: folders
// are parsed via ParsePath, which has access to the filesystem. This
// satisfies the Strategy interface.
func (s *FolderStrategy) Parse(string) *dom.Node {
	return &dom.Node{Content: "", Type: dom.TypeDocument, Name: "root"}
}

// ParsePath walks path into a hierarchical node tree.
func (s *FolderStrategy) ParsePath(path string) (*dom.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %s", path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	if s.UseGitignore {
		s.gitignore = loadGitignore(path)
	}

	return s.parseDirectory(path, path, 0), nil
}

func (s *FolderStrategy) parseDirectory(root, path string, depth int) *dom.Node {
	dirName := filepath.Base(path)
	if dirName == "." || dirName == "/" {
		dirName = path
	}
	indentPrefix := strings.Repeat(s.Indent, depth)

	dirNode := &dom.Node{
		Content: fmt.Sprintf("%s%s/", indentPrefix, dirName),
		Type:    "directory",
		Name:    dirName,
	}

	if depth >= s.MaxDepth {
		return dirNode
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return dirNode
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		fullPath := filepath.Join(path, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 && !s.FollowSymlinks {
			continue
		}
		if s.shouldSkip(entry.Name()) {
			continue
		}
		if s.gitignore != nil {
			rel, err := filepath.Rel(root, fullPath)
			if err == nil && s.gitignore.isIgnored(rel, entry.IsDir()) {
				continue
			}
		}

		if entry.IsDir() {
			dirNode.AddChild(s.parseDirectory(root, fullPath, depth+1))
			continue
		}
		if fileNode := s.parseFile(fullPath, depth+1); fileNode != nil {
			dirNode.AddChild(fileNode)
		}
	}

	return dirNode
}

func (s *FolderStrategy) parseFile(path string, depth int) *dom.Node {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	indentPrefix := strings.Repeat(s.Indent, depth)
	sizeStr := formatSize(info.Size())
	name := filepath.Base(path)

	if s.isBinary(path) {
		return &dom.Node{
			Content: fmt.Sprintf("%s%s [binary] [%s]", indentPrefix, name, sizeStr),
			Type:    "file",
			Name:    name,
			Atomic:  true,
		}
	}

	preview := s.readPreview(path)

	var content string
	if preview != "" {
		content = fmt.Sprintf("%s%s - %s [%s]", indentPrefix, name, preview, sizeStr)
	} else {
		content = fmt.Sprintf("%s%s [%s]", indentPrefix, name, sizeStr)
	}

	return &dom.Node{Content: content, Type: "file", Name: name, Atomic: true}
}

func (s *FolderStrategy) readPreview(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, s.MaxReadBytes)
	n, _ := f.Read(buf)
	buf = buf[:n]

	text := decodePreviewText(buf)
	collapsed := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	runes := []rune(collapsed)
	if len(runes) > s.PreviewChars {
		collapsed = string(runes[:s.PreviewChars])
	}
	return collapsed
}

// decodePreviewText decodes raw bytes as UTF-8 when valid; otherwise it
// falls back to treating each byte as its own Latin-1 code point (the
// Python implementation's latin-1-fallback-never-fails behavior), since a
// preview is advisory and should never error out on binary-ish content.
func decodePreviewText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func (s *FolderStrategy) isBinary(path string) bool {
	return BinaryExtensions[strings.ToLower(filepath.Ext(path))]
}

func (s *FolderStrategy) shouldSkip(name string) bool {
	for _, pattern := range s.SkipPatterns {
		if pattern == name {
			return true
		}
		if strings.HasPrefix(pattern, "*") && strings.HasSuffix(name, pattern[1:]) {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func formatSize(size int64) string {
	const kb, mb, gb = 1024.0, 1024.0 * 1024.0, 1024.0 * 1024.0 * 1024.0
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case float64(size) < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case float64(size) < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	}
}

func (s *FolderStrategy) Rank(node *dom.Node) float64 {
	switch node.Type {
	case "directory":
		return 0.8
	case "file":
		return 0.5
	default:
		return 0.5
	}
}

func (s *FolderStrategy) Render(node *dom.Node, budget int) (string, bool) {
	return DefaultRender(node, budget)
}
