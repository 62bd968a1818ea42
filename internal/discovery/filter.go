package discovery

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternFilter implements the discovery filter predicate from spec section
// 4.2: a path passes iff no exclude pattern matches the full path AND some
// include pattern matches the file's basename. Exclude is evaluated first
// and wins ties.
type PatternFilter struct {
	includes []string
	excludes []string
	logger   *slog.Logger
}

// PatternFilterOptions holds the configuration for creating a new
// PatternFilter.
type PatternFilterOptions struct {
	// Includes is an ordered sequence of doublestar glob patterns matched
	// against a candidate's basename. If empty, no file passes -- callers
	// are expected to supply the format's default extensions.
	Includes []string

	// Excludes is a sequence of doublestar glob patterns matched against a
	// candidate's full path.
	Excludes []string
}

// NewPatternFilter creates a new PatternFilter from the provided options.
// Copies are made of both input slices to prevent external mutation.
func NewPatternFilter(opts PatternFilterOptions) *PatternFilter {
	includes := make([]string, len(opts.Includes))
	copy(includes, opts.Includes)

	excludes := make([]string, len(opts.Excludes))
	copy(excludes, opts.Excludes)

	logger := slog.Default().With("component", "pattern-filter")
	logger.Debug("pattern filter initialized",
		"includes", len(includes),
		"excludes", len(excludes),
	)

	return &PatternFilter{
		includes: includes,
		excludes: excludes,
		logger:   logger,
	}
}

// Matches reports whether the given path should be included in the batch.
// path should be relative to the walk root (or any path ending in the
// candidate's basename), using forward slashes.
func (f *PatternFilter) Matches(path string) bool {
	normalizedPath := filepath.ToSlash(path)
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")

	if normalizedPath == "" {
		return false
	}

	for _, pattern := range f.excludes {
		matched, err := doublestar.Match(pattern, normalizedPath)
		if err != nil {
			f.logger.Debug("invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		if matched {
			f.logger.Debug("path excluded by pattern", "path", normalizedPath, "pattern", pattern)
			return false
		}
	}

	basename := filepath.Base(normalizedPath)
	for _, pattern := range f.includes {
		matched, err := doublestar.Match(pattern, basename)
		if err != nil {
			f.logger.Debug("invalid include pattern", "pattern", pattern, "error", err)
			continue
		}
		if matched {
			return true
		}
	}

	return false
}

// HasExcludes reports whether any exclude pattern is configured.
func (f *PatternFilter) HasExcludes() bool {
	return len(f.excludes) > 0
}
