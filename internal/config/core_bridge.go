package config

import (
	"github.com/bug-ops/fast-yaml/internal/core"
)

// Resolve maps a fully-merged Profile onto the core.Config shape the batch
// driver consumes: the four spec.md §3 sub-configs plus the mmap threshold
// parsed from its human-readable string form.
func (p *Profile) Resolve() (*core.Config, error) {
	threshold := core.DefaultMmapThreshold
	if p.MmapThreshold != "" {
		parsed, err := ParseByteSize(p.MmapThreshold)
		if err != nil {
			return nil, err
		}
		threshold = parsed
	}

	cfg := &core.Config{
		Discovery: core.DiscoveryConfig{
			Includes:           p.Include,
			Excludes:           p.Exclude,
			MaxDepth:           p.MaxDepth,
			IncludeHidden:      p.IncludeHidden,
			RespectIgnoreFiles: boolPtrValue(p.RespectIgnoreFiles, true),
			FollowSymlinks:     p.FollowSymlinks,
			GitTrackedOnly:     p.GitTrackedOnly,
		},
		Formatting: core.FormattingConfig{
			IndentWidth:   p.IndentWidth,
			MaxLineWidth:  p.MaxLineWidth,
			ExplicitStart: p.ExplicitStart,
		},
		Execution: core.ExecutionConfig{
			WorkerCount:   p.WorkerCount,
			MmapThreshold: threshold,
			InPlace:       p.InPlace,
			DryRun:        p.DryRun,
			Verbose:       p.Verbose,
		},
		Reporting: core.ReportingConfig{
			Quiet:    p.Quiet,
			UseColor: boolPtrValue(p.UseColor, true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
