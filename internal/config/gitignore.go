package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignorePattern is one parsed .gitignore line, converted to a
// doublestar glob at parse time.
type GitignorePattern struct {
	Glob     string
	Negate   bool
	Absolute bool
}

// GitignoreParser matches paths against a set of patterns loaded from a
// .gitignore file, combined with the config's own ignore glob list.
type GitignoreParser struct {
	patterns []GitignorePattern
}

// NewGitignoreParser creates an empty parser.
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{}
}

// LoadGitignore loads patterns from rootPath/.gitignore. A missing file
// is not an error.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}
	return scanner.Err()
}

// AddPattern parses and appends a single gitignore-syntax line.
func (gp *GitignoreParser) AddPattern(line string) {
	p := GitignorePattern{}

	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	directory := strings.HasSuffix(line, "/")
	line = strings.TrimSuffix(line, "/")
	if strings.HasPrefix(line, "/") {
		p.Absolute = true
		line = line[1:]
	}

	glob := line
	switch {
	case p.Absolute && directory:
		glob = line + "/**"
	case p.Absolute:
		glob = line
	case directory:
		glob = "**/" + line + "/**"
	case strings.Contains(line, "/"):
		glob = line
	default:
		glob = "**/" + line
	}
	p.Glob = glob

	gp.patterns = append(gp.patterns, p)
}

// ShouldIgnore reports whether path (relative to the scanned root,
// forward-slash separated) matches the loaded pattern set. Later
// patterns override earlier ones, matching git's own precedence rule.
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	if isDir {
		path = strings.TrimSuffix(path, "/")
	}

	ignored := false
	for _, p := range gp.patterns {
		matched, err := doublestar.Match(p.Glob, path)
		if err != nil || !matched {
			continue
		}
		ignored = !p.Negate
	}
	return ignored
}

// GetExclusionPatterns returns every non-negated pattern's glob, for
// merging into a Config's Ignore list.
func (gp *GitignoreParser) GetExclusionPatterns() []string {
	var out []string
	for _, p := range gp.patterns {
		if p.Negate {
			continue
		}
		out = append(out, p.Glob)
	}
	return out
}

// MatchIgnore reports whether path matches any glob in patterns, using
// the same doublestar semantics ShouldIgnore uses for .gitignore lines.
func MatchIgnore(patterns []string, path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
