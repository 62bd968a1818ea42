package config

// Config is the top-level configuration type parsed from a fast-yaml.toml
// file. It holds a map of named profiles keyed by profile name. Profile
// names are case-sensitive. The special name "default" is the built-in
// fallback profile.
type Config struct {
	// Profile maps profile names to their configuration. Access via
	// cfg.Profile["default"] or cfg.Profile["ci"].
	Profile map[string]*Profile `toml:"profile"`
}

// Profile defines all settings for a single named profile. Fields with zero
// values are considered unset and will be filled in by the merge/inheritance
// pipeline. The Extends field enables profile inheritance.
type Profile struct {
	// Extends is the name of a parent profile to inherit from. When set,
	// all unset fields in this profile are filled from the named parent.
	// A nil pointer means no inheritance.
	Extends *string `toml:"extends"`

	// Include is an ordered list of glob patterns matched against a
	// candidate file's basename. Defaults to ["*.yml", "*.yaml"] when
	// unset.
	Include []string `toml:"include"`

	// Exclude is a list of glob patterns matched against a candidate
	// file's full path.
	Exclude []string `toml:"exclude"`

	// MaxDepth bounds recursion during a directory walk. Zero means
	// unlimited.
	MaxDepth int `toml:"max_depth"`

	// IncludeHidden controls whether dotfiles and dot-directories are
	// visited during a walk.
	IncludeHidden bool `toml:"include_hidden"`

	// RespectIgnoreFiles toggles honoring .gitignore/.fastyamlignore and
	// built-in global excludes during a walk. A pointer so the merge
	// pipeline can distinguish "not set in this profile" from an explicit
	// false, since the default is true.
	RespectIgnoreFiles *bool `toml:"respect_ignore_files"`

	// FollowSymlinks controls whether symlinked entries are followed
	// during a walk.
	FollowSymlinks bool `toml:"follow_symlinks"`

	// GitTrackedOnly restricts a directory walk to files known to the Git
	// index.
	GitTrackedOnly bool `toml:"git_tracked_only"`

	// IndentWidth is the formatter's indent width, clamped to [2, 8].
	IndentWidth int `toml:"indent_width"`

	// MaxLineWidth is the formatter's preferred wrap width.
	MaxLineWidth int `toml:"max_line_width"`

	// ExplicitStart emits the YAML "---" document-start marker.
	ExplicitStart bool `toml:"explicit_start"`

	// WorkerCount is the number of parallel workers. Zero means
	// auto-detect the logical CPU count.
	WorkerCount int `toml:"worker_count"`

	// MmapThreshold is a human-readable byte size (e.g. "512KiB") at or
	// above which the Reader prefers memory mapping over a full read.
	MmapThreshold string `toml:"mmap_threshold"`

	// InPlace enables rewriting changed files on disk.
	InPlace bool `toml:"in_place"`

	// DryRun, combined with InPlace, computes what would change without
	// writing it.
	DryRun bool `toml:"dry_run"`

	// Verbose enables per-file progress messages on the diagnostic
	// stream.
	Verbose bool `toml:"verbose"`

	// Quiet suppresses the summary line and per-file progress unless the
	// batch has failures.
	Quiet bool `toml:"quiet"`

	// UseColor enables ANSI coloring of status words in the summary line.
	UseColor *bool `toml:"use_color"`
}
