package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// DefaultMmapThresholdRaw is the default --mmap-threshold flag value.
const DefaultMmapThresholdRaw = "512KiB"

// FlagValues collects all parsed global flag values from the CLI. This
// struct is populated by BindFlags and passed to downstream pipeline
// stages. Field names mirror Profile so CLIFlags can be built by reflecting
// over which flags were explicitly set on the command.
type FlagValues struct {
	Dir                string
	Include            []string
	Exclude            []string
	MaxDepth           int
	IncludeHidden      bool
	RespectIgnoreFiles bool
	FollowSymlinks     bool
	GitTrackedOnly     bool
	IndentWidth        int
	MaxLineWidth       int
	ExplicitStart      bool
	WorkerCount        int
	MmapThreshold      int64 // parsed bytes, derived from mmapThresholdRaw
	InPlace            bool
	DryRun             bool
	Verbose            bool
	Quiet              bool
	UseColor           bool
	NoColor            bool
}

// mmapThresholdRaw holds the raw string value for --mmap-threshold before
// parsing. Cobra needs a string target for binding; ValidateFlags parses it
// into FlagValues.MmapThreshold.
var mmapThresholdRaw string

// BindFlags registers all global persistent flags on the given Cobra command
// and returns a FlagValues pointer that will be populated when the command is
// executed. Callers should access the returned struct after flag parsing.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Dir, "dir", "d", ".", "target directory to scan")
	pf.StringArrayVar(&fv.Include, "include", nil, "include glob pattern (repeatable)")
	pf.StringArrayVar(&fv.Exclude, "exclude", nil, "exclude glob pattern (repeatable)")
	pf.IntVar(&fv.MaxDepth, "max-depth", 0, "maximum directory recursion depth (0 = unbounded)")
	pf.BoolVar(&fv.IncludeHidden, "include-hidden", false, "include dotfiles and dot-directories")
	pf.BoolVar(&fv.RespectIgnoreFiles, "respect-ignore-files", true, "honor .gitignore and .fastyamlignore")
	pf.BoolVar(&fv.FollowSymlinks, "follow-symlinks", false, "follow symlinked files and directories")
	pf.BoolVar(&fv.GitTrackedOnly, "git-tracked-only", false, "restrict discovery to files known to the git index")
	pf.IntVar(&fv.IndentWidth, "indent-width", 2, "formatter indent width, clamped to [2, 8]")
	pf.IntVar(&fv.MaxLineWidth, "max-line-width", 0, "formatter preferred wrap width (0 = no wrapping)")
	pf.BoolVar(&fv.ExplicitStart, "explicit-start", false, "emit the YAML \"---\" document-start marker")
	pf.IntVarP(&fv.WorkerCount, "workers", "w", 0, "number of parallel workers (0 = auto-detect CPU count)")
	pf.StringVar(&mmapThresholdRaw, "mmap-threshold", DefaultMmapThresholdRaw, "mmap-vs-full-read size boundary (e.g. 256KiB, 1MiB)")
	pf.BoolVar(&fv.InPlace, "in-place", false, "rewrite changed files on disk")
	pf.BoolVar(&fv.DryRun, "dry-run", false, "report what would change without writing it")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable per-file progress messages")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress the summary line and progress unless the batch fails")
	pf.BoolVar(&fv.UseColor, "color", true, "colorize status words in the summary line")
	pf.BoolVar(&fv.NoColor, "no-color", false, "disable colorized output")

	return fv
}

// ValidateFlags checks the parsed flag values for correctness and mutual
// exclusion. It also applies environment variable fallbacks and normalizes
// values. Call this from PersistentPreRunE after Cobra has parsed the flags.
func ValidateFlags(fv *FlagValues, cmd *cobra.Command) error {
	applyEnvOverrides(fv, cmd)

	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	info, err := os.Stat(fv.Dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--dir: %s is not a directory", fv.Dir)
	}

	if fv.IndentWidth < 2 || fv.IndentWidth > 8 {
		return fmt.Errorf("--indent-width: %d is out of range [2, 8]", fv.IndentWidth)
	}

	if fv.MaxDepth < 0 {
		return fmt.Errorf("--max-depth: must be non-negative, got %d", fv.MaxDepth)
	}

	if fv.WorkerCount < 0 {
		return fmt.Errorf("--workers: must be non-negative, got %d", fv.WorkerCount)
	}

	size, err := ParseByteSize(mmapThresholdRaw)
	if err != nil {
		return fmt.Errorf("--mmap-threshold: %w", err)
	}
	fv.MmapThreshold = size

	if fv.NoColor {
		fv.UseColor = false
	}

	return nil
}

// applyEnvOverrides applies FASTYAML_* environment variable fallbacks for
// flags that were not explicitly set on the command line.
func applyEnvOverrides(fv *FlagValues, cmd *cobra.Command) {
	if v := os.Getenv(EnvInclude); v != "" && !cmd.Flags().Changed("include") {
		fv.Include = splitCommaList(v)
	}
	if v := os.Getenv(EnvExclude); v != "" && !cmd.Flags().Changed("exclude") {
		fv.Exclude = splitCommaList(v)
	}
	if v := os.Getenv(EnvIndentWidth); v != "" && !cmd.Flags().Changed("indent-width") {
		if n, err := strconv.Atoi(v); err == nil {
			fv.IndentWidth = n
		}
	}
	if v := os.Getenv(EnvWorkerCount); v != "" && !cmd.Flags().Changed("workers") {
		if n, err := strconv.Atoi(v); err == nil {
			fv.WorkerCount = n
		}
	}
	if v := os.Getenv(EnvMmapThreshold); v != "" && !cmd.Flags().Changed("mmap-threshold") {
		mmapThresholdRaw = v
	}
	if v := os.Getenv(EnvInPlace); v != "" && !cmd.Flags().Changed("in-place") {
		if b, err := strconv.ParseBool(v); err == nil {
			fv.InPlace = b
		}
	}
	if v := os.Getenv(EnvDryRun); v != "" && !cmd.Flags().Changed("dry-run") {
		if b, err := strconv.ParseBool(v); err == nil {
			fv.DryRun = b
		}
	}
}

// ParseByteSize parses a human-readable byte size into bytes. It accepts
// binary-unit suffixes KiB, MiB, and GiB (case-insensitive, 1024-based) as
// well as plain decimal byte counts with no suffix.
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)

	var suffix string
	var multiplier int64

	switch {
	case strings.HasSuffix(upper, "GIB"):
		suffix = "GIB"
		multiplier = 1024 * 1024 * 1024
	case strings.HasSuffix(upper, "MIB"):
		suffix = "MIB"
		multiplier = 1024 * 1024
	case strings.HasSuffix(upper, "KIB"):
		suffix = "KIB"
		multiplier = 1024
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		if n < 0 {
			return 0, fmt.Errorf("size must be non-negative: %q", s)
		}
		return n, nil
	}

	numStr := strings.TrimSpace(s[:len(s)-len(suffix)])
	n, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(numStr, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		if f < 0 {
			return 0, fmt.Errorf("size must be non-negative: %q", s)
		}
		return int64(f * float64(multiplier)), nil
	}
	if n < 0 {
		return 0, fmt.Errorf("size must be non-negative: %q", s)
	}
	return n * multiplier, nil
}

// ToConfig maps validated FlagValues directly onto the core.Config shape the
// batch driver consumes. Call this after ValidateFlags has run.
func (fv *FlagValues) ToConfig() (*core.Config, error) {
	cfg := &core.Config{
		Discovery: core.DiscoveryConfig{
			Includes:           fv.Include,
			Excludes:           fv.Exclude,
			MaxDepth:           fv.MaxDepth,
			IncludeHidden:      fv.IncludeHidden,
			RespectIgnoreFiles: fv.RespectIgnoreFiles,
			FollowSymlinks:     fv.FollowSymlinks,
			GitTrackedOnly:     fv.GitTrackedOnly,
		},
		Formatting: core.FormattingConfig{
			IndentWidth:   fv.IndentWidth,
			MaxLineWidth:  fv.MaxLineWidth,
			ExplicitStart: fv.ExplicitStart,
		},
		Execution: core.ExecutionConfig{
			WorkerCount:   fv.WorkerCount,
			MmapThreshold: fv.MmapThreshold,
			InPlace:       fv.InPlace,
			DryRun:        fv.DryRun,
			Verbose:       fv.Verbose,
		},
		Reporting: core.ReportingConfig{
			Quiet:    fv.Quiet,
			UseColor: fv.UseColor,
		},
	}

	if len(cfg.Discovery.Includes) == 0 {
		cfg.Discovery.Includes = DefaultProfile().Include
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
