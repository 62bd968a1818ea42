package core

// DiscoveryConfig controls how input paths are expanded into a filtered,
// deduplicated sequence of files.
type DiscoveryConfig struct {
	// Includes is an ordered sequence of glob patterns matched against a
	// candidate file's basename. Defaults to the source-format extensions
	// (*.yml, *.yaml) when empty.
	Includes []string

	// Excludes is a sequence of glob patterns matched against a candidate
	// file's full path. A match here always wins over an include match.
	Excludes []string

	// MaxDepth bounds recursion during a directory walk. Zero means
	// unlimited.
	MaxDepth int

	// IncludeHidden controls whether dotfiles and dot-directories are
	// visited during a walk.
	IncludeHidden bool

	// RespectIgnoreFiles toggles honoring VCS-style per-directory ignore
	// files and built-in global excludes during a walk.
	RespectIgnoreFiles bool

	// FollowSymlinks controls whether symlinked entries are followed
	// during a walk. Regardless of this flag, a symlink loop is always
	// detected and broken.
	FollowSymlinks bool

	// GitTrackedOnly restricts a directory walk to files known to the Git
	// index.
	GitTrackedOnly bool
}

// FormattingConfig controls how the external formatter renders a document.
// The core treats these fields as opaque input to format(); it never
// inspects formatted output beyond the byte-for-byte unchanged comparison.
type FormattingConfig struct {
	// IndentWidth is clamped to [2, 8] by Config.Validate.
	IndentWidth int

	// MaxLineWidth is the preferred wrap width; zero disables wrapping.
	MaxLineWidth int

	// ExplicitStart emits the YAML "---" document-start marker.
	ExplicitStart bool
}

// ExecutionConfig controls the processing run itself: parallelism, I/O
// strategy selection, and whether rewrites actually touch disk.
type ExecutionConfig struct {
	// WorkerCount is the number of parallel workers. Zero means
	// auto-detect the logical CPU count.
	WorkerCount int

	// MmapThreshold is the file-size boundary, in bytes, at or above which
	// the Reader prefers memory mapping over a full read.
	MmapThreshold int64

	// InPlace enables rewriting changed files on disk.
	InPlace bool

	// DryRun, combined with InPlace, computes what would change without
	// writing it.
	DryRun bool

	// Verbose enables per-file progress messages on the diagnostic
	// stream.
	Verbose bool
}

// ReportingConfig controls the Reporter's output.
type ReportingConfig struct {
	// Quiet suppresses the summary line and per-file progress unless the
	// batch has failures.
	Quiet bool

	// UseColor enables ANSI coloring of status words in the summary line.
	UseColor bool
}

// DefaultMmapThreshold is the byte threshold at or above which the Reader
// prefers memory mapping over a full read.
const DefaultMmapThreshold int64 = 512 * 1024

// SequentialThreshold is the batch size below which the Pool, when run
// with an auto-detected worker count, runs sequentially on the caller's
// thread rather than constructing a parallel pool.
const SequentialThreshold = 10

// Config is the complete, immutable configuration for one batch
// invocation.
type Config struct {
	Discovery DiscoveryConfig
	Formatting FormattingConfig
	Execution ExecutionConfig
	Reporting ReportingConfig

	// OutputPath, when non-empty, names a single explicit destination for
	// single-file mode. It is mutually exclusive with InPlace.
	OutputPath string
}

// DefaultConfig returns a Config populated with the defaults: include
// patterns "*.yml" and "*.yaml", ignore files respected, indent width 2,
// a 512 KiB mmap threshold, auto-detected worker count, and color
// reporting enabled.
func DefaultConfig() Config {
	return Config{
		Discovery: DiscoveryConfig{
			Includes:           []string{"*.yml", "*.yaml"},
			RespectIgnoreFiles: true,
		},
		Formatting: FormattingConfig{
			IndentWidth: 2,
		},
		Execution: ExecutionConfig{
			MmapThreshold: DefaultMmapThreshold,
		},
		Reporting: ReportingConfig{
			UseColor: true,
		},
	}
}

// Validate enforces the data-model invariants from spec.md section 3. It is
// called once, before discovery begins; any error here is fatal and maps to
// ExitError.
func (c *Config) Validate() error {
	if c.Formatting.IndentWidth < 2 {
		c.Formatting.IndentWidth = 2
	}
	if c.Formatting.IndentWidth > 8 {
		c.Formatting.IndentWidth = 8
	}

	if c.Execution.InPlace && c.OutputPath != "" {
		return NewConfigError("--in-place and an explicit output path are mutually exclusive")
	}

	if c.Execution.MmapThreshold < 0 {
		return NewConfigError("mmap threshold must be non-negative, got %d", c.Execution.MmapThreshold)
	}

	if c.Execution.WorkerCount < 0 {
		return NewConfigError("worker count must be non-negative, got %d", c.Execution.WorkerCount)
	}

	if c.Discovery.MaxDepth < 0 {
		return NewConfigError("max depth must be non-negative, got %d", c.Discovery.MaxDepth)
	}

	return nil
}
