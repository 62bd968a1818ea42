package discovery

import (
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// GlobalExcludePatterns are the built-in directory excludes applied during
// a walk when RespectIgnoreFiles is enabled, regardless of any .gitignore
// or .fastyamlignore present. These cover directories that are never a
// source of hand-authored YAML: version control metadata, dependency
// trees, and build output.
var GlobalExcludePatterns = []string{
	".git/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	".idea/",
	".vscode/",
}

// GlobalExcludeMatcher compiles GlobalExcludePatterns into a matcher that
// implements the Ignorer interface, using the same sabhiram/go-gitignore
// library as GitignoreMatcher for consistent pattern evaluation.
type GlobalExcludeMatcher struct {
	matcher *gitignore.GitIgnore
	logger  *slog.Logger
}

// NewGlobalExcludeMatcher compiles GlobalExcludePatterns. This never fails:
// the patterns are compile-time constants known to be valid.
func NewGlobalExcludeMatcher() *GlobalExcludeMatcher {
	compiled := gitignore.CompileIgnoreLines(GlobalExcludePatterns...)

	return &GlobalExcludeMatcher{
		matcher: compiled,
		logger:  slog.Default().With("component", "global-exclude"),
	}
}

// IsIgnored reports whether path matches any global exclude pattern.
func (g *GlobalExcludeMatcher) IsIgnored(path string, isDir bool) bool {
	normalizedPath := filepath.ToSlash(path)
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")

	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	matchPath := normalizedPath
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	if g.matcher.MatchesPath(matchPath) {
		g.logger.Debug("path matched global exclude", "path", normalizedPath)
		return true
	}

	return false
}

// Compile-time interface compliance check.
var _ Ignorer = (*GlobalExcludeMatcher)(nil)
