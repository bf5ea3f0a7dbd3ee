package format

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// gitignoreMatcher loads and evaluates .gitignore files hierarchically
// under a root directory, honoring nested .gitignore files: a file is
// ignored if any ancestor directory's .gitignore matches it, relative to
// that ancestor. A negation ("!pattern") in a nested .gitignore does not
// re-include a file that an ancestor's rules ignore. This is an optional supplement to
// the folder strategy's skip patterns (spec §9), off unless requested.
type gitignoreMatcher struct {
	root     string
	matchers map[string]*gitignore.GitIgnore
	dirs     []string
}

// newGitignoreMatcher walks rootDir to discover and compile all
// .gitignore files beneath it. Missing or unreadable .gitignore files at
// individual directory levels are skipped rather than treated as fatal.
func newGitignoreMatcher(rootDir string) (*gitignoreMatcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	m := &gitignoreMatcher{root: absRoot, matchers: make(map[string]*gitignore.GitIgnore)}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("folder: skipping unreadable path", "path", path, "error", err)
			return filepath.SkipDir
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}

		dirPath := filepath.Dir(path)
		relDir, err := filepath.Rel(absRoot, dirPath)
		if err != nil {
			return nil
		}
		compiled, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			slog.Debug("folder: skipping unreadable .gitignore", "path", path, "error", err)
			return nil
		}
		if relDir == "" {
			relDir = "."
		}
		m.matchers[relDir] = compiled
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.dirs = make([]string, 0, len(m.matchers))
	for dir := range m.matchers {
		m.dirs = append(m.dirs, dir)
	}
	sort.Strings(m.dirs)

	return m, nil
}

// isIgnored reports whether path (relative to root, forward-slashed)
// should be skipped per the loaded .gitignore rules.
func (m *gitignoreMatcher) isIgnored(path string, isDir bool) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" || normalized == "." {
		return false
	}

	matchPath := normalized
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	for _, dir := range m.dirs {
		if dir != "." {
			prefix := dir + "/"
			if !strings.HasPrefix(normalized, prefix) {
				continue
			}
		}

		var relPath string
		if dir == "." {
			relPath = matchPath
		} else {
			relPath = strings.TrimPrefix(matchPath, dir+"/")
		}

		if m.matchers[dir].MatchesPath(relPath) {
			return true
		}
	}

	return false
}

// loadGitignore builds a matcher for rootDir, logging and returning nil
// (meaning "nothing ignored") on failure rather than aborting the walk.
func loadGitignore(rootDir string) *gitignoreMatcher {
	m, err := newGitignoreMatcher(rootDir)
	if err != nil {
		slog.Debug("folder: gitignore matcher init failed", "root", rootDir, "error", err)
		return nil
	}
	if len(m.matchers) == 0 {
		return nil
	}
	return m
}
