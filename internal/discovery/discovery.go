// Package discovery implements component C2: turning a mix of file paths,
// directories, and glob patterns into a deduplicated, filtered sequence of
// DiscoveredFile entries.
package discovery

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// MaxStdinPaths bounds the number of lines accepted from a stdin path list.
// A stream exceeding this limit fails the whole batch with core.TooManyPaths.
const MaxStdinPaths = 100_000

// MaxGlobMatches bounds the number of files a single glob pattern may
// expand to. A pattern exceeding this limit is truncated; the overflow is
// logged as a warning and does not abort the batch.
const MaxGlobMatches = 100_000

// MaxLineLength bounds the length, in bytes, of a single line read from a
// stdin path list. Longer lines are skipped with a warning rather than
// failing the batch.
const MaxLineLength = 4096

// dedupSet is a concurrency-safe set of canonical paths used to ensure each
// real file is discovered at most once, regardless of how many input
// strings resolve to it.
type dedupSet struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newDedupSet() *dedupSet {
	return &dedupSet{seen: make(map[string]bool)}
}

// insert reports whether path was newly added (true) or already present
// (false).
func (d *dedupSet) insert(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[path] {
		return false
	}
	d.seen[path] = true
	return true
}

// Discovery turns user-supplied input strings into a filtered,
// deduplicated sequence of DiscoveredFile entries. One Discovery instance
// is built per invocation from a resolved core.DiscoveryConfig.
type Discovery struct {
	cfg    core.DiscoveryConfig
	filter *PatternFilter
	logger *slog.Logger
}

// New compiles the discovery configuration into a Discovery. It fails fast
// if any include or exclude pattern is not a valid glob.
func New(cfg core.DiscoveryConfig) (*Discovery, error) {
	for _, p := range cfg.Includes {
		if _, err := doublestar.Match(p, "probe"); err != nil {
			return nil, fmt.Errorf("%w: invalid include pattern %q: %v", errInvalidPattern, p, err)
		}
	}
	for _, p := range cfg.Excludes {
		if _, err := doublestar.Match(p, "probe"); err != nil {
			return nil, fmt.Errorf("%w: invalid exclude pattern %q: %v", errInvalidPattern, p, err)
		}
	}

	return &Discovery{
		cfg:    cfg,
		filter: NewPatternFilter(PatternFilterOptions{Includes: cfg.Includes, Excludes: cfg.Excludes}),
		logger: slog.Default().With("component", "discovery"),
	}, nil
}

var errInvalidPattern = fmt.Errorf("invalid pattern")

// ShouldInclude reports whether path passes the configured include/exclude
// filter. It does not consult the filesystem.
func (d *Discovery) ShouldInclude(path string) bool {
	return d.filter.Matches(path)
}

// Discover classifies each input string -- an existing regular file, an
// existing directory, or a glob pattern -- and expands it into
// DiscoveredFile entries, deduplicated by canonical real path across all
// inputs. The first occurrence (in input order) of a given real file wins
// and keeps its original Origin.
func (d *Discovery) Discover(paths []string) ([]core.DiscoveredFile, error) {
	dedup := newDedupSet()
	var results []core.DiscoveredFile

	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err == nil && !info.IsDir():
			found, derr := d.discoverDirectPath(p, dedup)
			if derr != nil {
				return nil, derr
			}
			results = append(results, found...)

		case err == nil && info.IsDir():
			found, derr := d.discoverDirectory(p, dedup)
			if derr != nil {
				return nil, derr
			}
			results = append(results, found...)

		default:
			found, derr := d.discoverGlob(p, dedup)
			if derr != nil {
				return nil, derr
			}
			results = append(results, found...)
		}
	}

	return results, nil
}

func (d *Discovery) discoverDirectPath(path string, dedup *dedupSet) ([]core.DiscoveredFile, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errPathNotFound, path, err)
	}
	if !dedup.insert(canonical) {
		return nil, nil
	}
	return []core.DiscoveredFile{{Path: canonical, Origin: core.DirectPath}}, nil
}

var errPathNotFound = fmt.Errorf("path not found")

func (d *Discovery) discoverDirectory(root string, dedup *dedupSet) ([]core.DiscoveredFile, error) {
	var ignorer Ignorer
	ignorers := make([]Ignorer, 0, 3)

	if d.cfg.RespectIgnoreFiles {
		ignorers = append(ignorers, NewGlobalExcludeMatcher())

		if gm, err := NewGitignoreMatcher(root); err == nil {
			ignorers = append(ignorers, gm)
		} else {
			d.logger.Debug("no gitignore matcher for root", "root", root, "error", err)
		}

		if fm, err := NewFastYamlIgnoreMatcher(root); err == nil {
			ignorers = append(ignorers, fm)
		} else {
			d.logger.Debug("no fastyamlignore matcher for root", "root", root, "error", err)
		}
	}
	ignorer = NewCompositeIgnorer(ignorers...)

	var gitTracked map[string]bool
	if d.cfg.GitTrackedOnly {
		tracked, err := GitTrackedFiles(root)
		if err != nil {
			return nil, fmt.Errorf("git-tracked-only discovery in %s: %w", root, err)
		}
		gitTracked = tracked
	}

	w := newWalker(dedup)
	return w.walk(walkerConfig{
		root:           root,
		ignorer:        ignorer,
		filter:         d.filter,
		maxDepth:       d.cfg.MaxDepth,
		includeHidden:  d.cfg.IncludeHidden,
		followSymlinks: d.cfg.FollowSymlinks,
		gitTrackedOnly: d.cfg.GitTrackedOnly,
		gitTracked:     gitTracked,
	})
}

func (d *Discovery) discoverGlob(pattern string, dedup *dedupSet) ([]core.DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errInvalidGlob, pattern, err)
	}

	if len(matches) == 0 {
		d.logger.Debug("glob pattern matched nothing", "pattern", pattern)
		return nil, nil
	}

	sort.Strings(matches)

	if len(matches) > MaxGlobMatches {
		d.logger.Warn("glob pattern exceeded match limit, truncating",
			"pattern", pattern, "matches", len(matches), "limit", MaxGlobMatches)
		matches = matches[:MaxGlobMatches]
	}

	var results []core.DiscoveredFile
	for _, m := range matches {
		info, statErr := os.Stat(m)
		if statErr != nil || info.IsDir() {
			continue
		}
		if !d.filter.Matches(m) {
			continue
		}
		canonical, cerr := Canonicalize(m)
		if cerr != nil {
			d.logger.Warn("cannot canonicalize glob match, skipping", "path", m, "error", cerr)
			continue
		}
		if !dedup.insert(canonical) {
			continue
		}
		results = append(results, core.DiscoveredFile{Path: canonical, Origin: core.GlobExpansion})
	}

	return results, nil
}

var errInvalidGlob = fmt.Errorf("invalid glob")

// DiscoverFromStream reads newline-separated paths from r -- one path per
// line, blank lines and lines starting with "#" ignored -- and discovers
// each the same way Discover classifies a single input string. Every line
// (blank and comment lines included) counts toward MaxStdinPaths; a stream
// exceeding that count fails the whole batch with core.TooManyPaths. A line
// longer than MaxLineLength is skipped with a warning rather than aborting
// the remaining list.
func (d *Discovery) DiscoverFromStream(r io.Reader) ([]core.DiscoveredFile, error) {
	dedup := newDedupSet()
	var results []core.DiscoveredFile

	reader := bufio.NewReader(r)

	count := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading stdin path list: %w", readErr)
		}
		done := readErr == io.EOF

		if raw != "" || !done {
			count++
			if count > MaxStdinPaths {
				return nil, core.NewError(core.TooManyPaths, "", fmt.Sprintf("stdin path list exceeds %d entries", MaxStdinPaths), nil)
			}

			if len(strings.TrimRight(raw, "\r\n")) > MaxLineLength {
				d.logger.Warn("stdin line exceeds max length, skipping", "limit", MaxLineLength)
				if done {
					break
				}
				continue
			}

			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, "#") {
				if done {
					break
				}
				continue
			}

			info, statErr := os.Stat(line)
			switch {
			case statErr == nil && !info.IsDir():
				canonical, cerr := Canonicalize(line)
				if cerr != nil {
					d.logger.Warn("cannot canonicalize stdin path, skipping", "path", line, "error", cerr)
				} else if dedup.insert(canonical) {
					results = append(results, core.DiscoveredFile{Path: canonical, Origin: core.StdinList})
				}

			case statErr == nil && info.IsDir():
				found, derr := d.discoverDirectory(line, dedup)
				if derr != nil {
					d.logger.Warn("directory walk from stdin failed, skipping", "path", line, "error", derr)
				} else {
					for i := range found {
						found[i].Origin = core.StdinList
					}
					results = append(results, found...)
				}

			default:
				found, derr := d.discoverGlob(line, dedup)
				if derr != nil {
					d.logger.Warn("glob expansion from stdin failed, skipping", "pattern", line, "error", derr)
				} else {
					for i := range found {
						found[i].Origin = core.StdinList
					}
					results = append(results, found...)
				}
			}
		}

		if done {
			break
		}
	}

	return results, nil
}
