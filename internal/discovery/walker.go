package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// walkerConfig holds the resolved configuration for a single directory
// walk, assembled by Discovery.Discover from the Discovery-wide config.
type walkerConfig struct {
	root               string
	ignorer            Ignorer
	filter             *PatternFilter
	maxDepth           int
	includeHidden      bool
	followSymlinks     bool
	gitTrackedOnly     bool
	gitTracked         map[string]bool
}

// walker performs a single-root directory traversal, applying ignore
// rules, depth limits, hidden-file policy, and the pattern filter. It
// reports per-entry failures as warnings on the diagnostic stream rather
// than aborting.
type walker struct {
	logger *slog.Logger
	dedup  *dedupSet
}

func newWalker(dedup *dedupSet) *walker {
	return &walker{
		logger: slog.Default().With("component", "walker"),
		dedup:  dedup,
	}
}

// walk traverses cfg.root and returns the DiscoveredFile entries that pass
// the ignore chain, depth limit, hidden-file policy, and pattern filter.
func (w *walker) walk(cfg walkerConfig) ([]core.DiscoveredFile, error) {
	symResolver := NewSymlinkResolver()

	var files []core.DiscoveredFile

	walkErr := filepath.WalkDir(cfg.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("walk error, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(cfg.root, path)
		if relErr != nil {
			w.logger.Warn("cannot compute relative path, skipping", "path", path, "error", relErr)
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == "." {
			return nil
		}

		isDir := d.IsDir()
		depth := strings.Count(relPath, "/") + 1

		if d.Name() == ".git" && isDir {
			return fs.SkipDir
		}

		if !cfg.includeHidden && isHidden(d.Name()) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if cfg.ignorer != nil && cfg.ignorer.IsIgnored(relPath, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			if cfg.maxDepth > 0 && depth >= cfg.maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		absPath := path
		if d.Type()&os.ModeSymlink != 0 {
			if !cfg.followSymlinks {
				return nil
			}
			realPath, isLoop, resErr := symResolver.Resolve(path)
			if resErr != nil {
				w.logger.Warn("broken symlink, skipping", "path", relPath, "error", resErr)
				return nil
			}
			if isLoop {
				w.logger.Warn("symlink loop detected, skipping", "path", relPath)
				return nil
			}
			symResolver.MarkVisited(realPath)
			absPath = realPath
		}

		if cfg.gitTrackedOnly && cfg.gitTracked != nil && !cfg.gitTracked[relPath] {
			return nil
		}

		if cfg.filter != nil && !cfg.filter.Matches(relPath) {
			return nil
		}

		canonical, canonErr := Canonicalize(absPath)
		if canonErr != nil {
			w.logger.Warn("cannot canonicalize path, skipping", "path", relPath, "error", canonErr)
			return nil
		}

		if !w.dedup.insert(canonical) {
			return nil
		}

		files = append(files, core.DiscoveredFile{Path: canonical, Origin: core.DirectoryWalk})
		return nil
	})

	if walkErr != nil {
		return nil, fmt.Errorf("walking directory %s: %w", cfg.root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// isHidden reports whether name (a single path component, not a full path)
// begins with a dot, excluding "." and "..".
func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.' && name != "." && name != ".."
}
