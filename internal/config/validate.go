package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// maxIndentWidth and minIndentWidth bound Profile.IndentWidth.
const (
	minIndentWidth = 2
	maxIndentWidth = 8
)

// maxWorkerCount is the absolute upper limit for Profile.WorkerCount. Values
// above this are almost certainly a configuration mistake rather than an
// intentional oversubscription.
const maxWorkerCount = 1024

// maxInheritanceWarningDepth is the chain length above which validation emits
// a warning about deep inheritance (mirrors the resolver constant).
const maxInheritanceWarningDepth = 3

// Validate inspects every profile in cfg and returns a slice of
// ValidationErrors describing hard errors and warnings found in the
// configuration. It does not stop at the first error; all profiles are
// checked and all findings are accumulated before returning.
//
// The returned slice is nil when no issues are found. Each element carries
// a Severity field of either "error" or "warning".
//
// Validate does not modify cfg.
func Validate(cfg *Config) []ValidationError {
	if cfg == nil {
		return nil
	}

	var results []ValidationError

	for name, profile := range cfg.Profile {
		if profile == nil {
			continue
		}
		errs := validateProfile(name, profile, cfg.Profile)
		results = append(results, errs...)
	}

	if len(results) > 0 {
		slog.Debug("config validation complete",
			"total_issues", len(results),
		)
	}

	return results
}

// validateProfile checks a single named profile and returns all validation
// errors and warnings for that profile.
func validateProfile(name string, p *Profile, allProfiles map[string]*Profile) []ValidationError {
	var results []ValidationError

	field := func(f string) string {
		return fmt.Sprintf("profile.%s.%s", name, f)
	}

	// ── Hard errors ────────────────────────────────────────────────────────

	// indent_width: zero means "inherit base default" via the merge
	// pipeline, so only a non-zero value is range-checked here.
	if p.IndentWidth != 0 && (p.IndentWidth < minIndentWidth || p.IndentWidth > maxIndentWidth) {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    field("indent_width"),
			Message:  fmt.Sprintf("indent_width %d is out of range [%d, %d]", p.IndentWidth, minIndentWidth, maxIndentWidth),
			Suggest:  fmt.Sprintf("Set indent_width between %d and %d", minIndentWidth, maxIndentWidth),
		})
	}

	// max_depth: negative is never valid (zero means unbounded).
	if p.MaxDepth < 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    field("max_depth"),
			Message:  fmt.Sprintf("max_depth %d is negative", p.MaxDepth),
			Suggest:  "Set max_depth to a non-negative integer or remove it for unbounded traversal",
		})
	}

	// max_line_width: negative is never valid (zero means no wrapping).
	if p.MaxLineWidth < 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    field("max_line_width"),
			Message:  fmt.Sprintf("max_line_width %d is negative", p.MaxLineWidth),
			Suggest:  "Set max_line_width to a non-negative integer or remove it to disable wrapping",
		})
	}

	// worker_count: negative is never valid; absurdly large is a warning,
	// not an error, since the caller may genuinely have that many cores.
	if p.WorkerCount < 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    field("worker_count"),
			Message:  fmt.Sprintf("worker_count %d is negative", p.WorkerCount),
			Suggest:  "Set worker_count to a non-negative integer, or 0 to auto-detect",
		})
	}
	if p.WorkerCount > maxWorkerCount {
		results = append(results, ValidationError{
			Severity: "warning",
			Field:    field("worker_count"),
			Message:  fmt.Sprintf("worker_count %d is unusually large", p.WorkerCount),
			Suggest:  fmt.Sprintf("Values above %d rarely improve throughput; verify this is intentional", maxWorkerCount),
		})
	}

	// mmap_threshold: must parse as a byte size when set.
	if p.MmapThreshold != "" {
		if _, err := ParseByteSize(p.MmapThreshold); err != nil {
			results = append(results, ValidationError{
				Severity: "error",
				Field:    field("mmap_threshold"),
				Message:  fmt.Sprintf("mmap_threshold %q is invalid: %s", p.MmapThreshold, err.Error()),
				Suggest:  "Use a byte size such as \"512KiB\", \"1MiB\", or a plain byte count",
			})
		}
	}

	// glob pattern validity
	results = append(results, validateGlobPatterns(name, p)...)

	// circular inheritance
	if p.Extends != nil && *p.Extends != "" {
		if _, err := ResolveProfile(name, allProfiles); err != nil {
			if strings.Contains(err.Error(), "circular") {
				results = append(results, ValidationError{
					Severity: "error",
					Field:    field("extends"),
					Message:  err.Error(),
					Suggest:  "Remove or restructure the extends chain to eliminate the cycle",
				})
			} else {
				results = append(results, ValidationError{
					Severity: "error",
					Field:    field("extends"),
					Message:  fmt.Sprintf("extends %q: %s", *p.Extends, err.Error()),
					Suggest:  fmt.Sprintf("Define a profile named %q or update the extends value", *p.Extends),
				})
			}
		}
	}

	// ── Warnings ───────────────────────────────────────────────────────────

	// dry_run without in_place has no effect: there is nothing to preview.
	if p.DryRun && !p.InPlace {
		results = append(results, ValidationError{
			Severity: "warning",
			Field:    field("dry_run"),
			Message:  "dry_run has no effect without in_place",
			Suggest:  "Set in_place = true to see what dry_run would change",
		})
	}

	// Inheritance depth > 3.
	results = append(results, warnDeepInheritance(name, p, allProfiles)...)

	return results
}

// validateGlobPatterns validates all glob pattern lists in the profile and
// returns errors for any invalid patterns.
func validateGlobPatterns(profileName string, p *Profile) []ValidationError {
	var results []ValidationError

	field := func(f string) string {
		return fmt.Sprintf("profile.%s.%s", profileName, f)
	}

	type patternList struct {
		fieldPath string
		patterns  []string
	}

	lists := []patternList{
		{field("include"), p.Include},
		{field("exclude"), p.Exclude},
	}

	for _, list := range lists {
		for i, pattern := range list.patterns {
			if err := validateGlobPattern(pattern); err != nil {
				results = append(results, ValidationError{
					Severity: "error",
					Field:    fmt.Sprintf("%s[%d]", list.fieldPath, i),
					Message:  fmt.Sprintf("invalid glob pattern %q: %s", pattern, err.Error()),
					Suggest:  "Use doublestar glob syntax, e.g. \"**/*.yaml\" or \"src/**\"",
				})
			}
		}
	}

	return results
}

// validateGlobPattern checks whether pattern is syntactically valid according
// to the doublestar library. It uses doublestar.ValidatePattern which returns
// false for malformed patterns (e.g. unclosed character classes or alternations).
func validateGlobPattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("syntax error in pattern %q", pattern)
	}
	return nil
}

// warnDeepInheritance returns a warning when the inheritance chain for the
// profile exceeds maxInheritanceWarningDepth levels.
func warnDeepInheritance(profileName string, p *Profile, allProfiles map[string]*Profile) []ValidationError {
	if p.Extends == nil || *p.Extends == "" {
		return nil
	}

	resolution, err := ResolveProfile(profileName, allProfiles)
	if err != nil {
		// Errors are already reported elsewhere (e.g. circular inheritance).
		return nil
	}

	depth := len(resolution.Chain)
	if depth <= maxInheritanceWarningDepth {
		return nil
	}

	return []ValidationError{
		{
			Severity: "warning",
			Field:    fmt.Sprintf("profile.%s.extends", profileName),
			Message: fmt.Sprintf(
				"inheritance chain is %d levels deep (%s)",
				depth,
				strings.Join(resolution.Chain, " -> "),
			),
			Suggest: "Flatten the inheritance chain to 3 levels or fewer for maintainability",
		},
	}
}

// Lint runs all Validate checks and additionally performs deeper static
// analysis of the configuration. It returns a slice of LintResult values that
// embed ValidationError for unified severity/field/message access.
//
// Lint-only checks include:
//   - No-extension include patterns: a pattern with no file-extension
//     suffix matches any file name regardless of type, which is rarely
//     intentional for a YAML-focused tool. Exclude patterns are not checked.
//   - Complexity score: profiles with many non-default fields set are flagged
//     to encourage splitting into focused sub-profiles.
//
// The returned slice is nil when no issues are found.
func Lint(cfg *Config) []LintResult {
	if cfg == nil {
		return nil
	}

	var results []LintResult

	// Include all Validate results as LintResults (Code left empty for these).
	for _, ve := range Validate(cfg) {
		results = append(results, LintResult{ValidationError: ve})
	}

	// Perform deeper lint-only analysis per profile.
	for name, profile := range cfg.Profile {
		if profile == nil {
			continue
		}
		results = append(results, lintProfile(name, profile)...)
	}

	return results
}

// lintProfile performs the deeper lint-only analysis for a single profile.
func lintProfile(profileName string, p *Profile) []LintResult {
	var results []LintResult

	results = append(results, lintNoExtPatterns(profileName, p)...)
	results = append(results, lintComplexity(profileName, p)...)

	return results
}

// lintNoExtPatterns detects include patterns that do not contain any
// file-extension-like suffix (no dot after the last path separator or
// wildcard). Such patterns match files of any type, which may be
// unintentional in a tool whose default include set is extension-based.
func lintNoExtPatterns(profileName string, p *Profile) []LintResult {
	var results []LintResult

	for i, pattern := range p.Include {
		if !patternHasExtension(pattern) {
			results = append(results, LintResult{
				ValidationError: ValidationError{
					Severity: "warning",
					Field:    fmt.Sprintf("profile.%s.include[%d]", profileName, i),
					Message:  fmt.Sprintf("pattern %q has no file extension; it will match files of any type", pattern),
					Suggest:  "Add an extension suffix (e.g. \"**/*.yaml\") unless matching all file types is intentional",
				},
				Code: "no-ext-match",
			})
		}
	}

	return results
}

// patternHasExtension reports whether pattern contains a dot after the last
// path separator or wildcard segment, indicating it matches a specific file
// extension. This is a heuristic, not a precise check.
func patternHasExtension(pattern string) bool {
	last := pattern
	if idx := strings.LastIndex(pattern, "/"); idx >= 0 {
		last = pattern[idx+1:]
	}
	dotIdx := strings.LastIndex(last, ".")
	if dotIdx < 0 {
		return false
	}
	// A leading dot alone (e.g. ".gitignore") does not constitute a file
	// extension.
	if dotIdx == 0 && !strings.Contains(last[1:], ".") {
		return false
	}
	return true
}

// complexityThreshold is the number of non-default fields above which a
// profile is considered overly complex.
const complexityThreshold = 8

// lintComplexity computes the number of non-zero/non-empty fields in a profile
// and emits a warning when the count exceeds complexityThreshold.
func lintComplexity(profileName string, p *Profile) []LintResult {
	score := profileComplexityScore(p)
	if score <= complexityThreshold {
		return nil
	}

	return []LintResult{
		{
			ValidationError: ValidationError{
				Severity: "warning",
				Field:    fmt.Sprintf("profile.%s", profileName),
				Message:  fmt.Sprintf("profile has a complexity score of %d (threshold: %d)", score, complexityThreshold),
				Suggest:  "Consider splitting into multiple profiles connected via extends to improve maintainability",
			},
			Code: "complexity",
		},
	}
}

// profileComplexityScore counts the number of non-empty / non-zero fields in
// the profile. Scalar fields each count as 1; each non-empty slice counts as 1.
func profileComplexityScore(p *Profile) int {
	score := 0

	if len(p.Include) > 0 {
		score++
	}
	if len(p.Exclude) > 0 {
		score++
	}
	if p.MaxDepth != 0 {
		score++
	}
	if p.IncludeHidden {
		score++
	}
	if p.RespectIgnoreFiles != nil {
		score++
	}
	if p.FollowSymlinks {
		score++
	}
	if p.GitTrackedOnly {
		score++
	}
	if p.IndentWidth != 0 {
		score++
	}
	if p.MaxLineWidth != 0 {
		score++
	}
	if p.ExplicitStart {
		score++
	}
	if p.WorkerCount != 0 {
		score++
	}
	if p.MmapThreshold != "" {
		score++
	}
	if p.InPlace {
		score++
	}
	if p.DryRun {
		score++
	}
	if p.Verbose {
		score++
	}
	if p.Quiet {
		score++
	}
	if p.UseColor != nil {
		score++
	}

	return score
}
