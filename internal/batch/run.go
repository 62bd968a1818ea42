// Package batch wires the discovery, reading, processing, pooling, and
// reporting components together into the single end-to-end run the CLI
// invokes: component C2 feeds component C4's pool of C3 invocations, whose
// folded result (C5) is rendered to the diagnostic stream.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bug-ops/fast-yaml/internal/core"
	"github.com/bug-ops/fast-yaml/internal/discovery"
	"github.com/bug-ops/fast-yaml/internal/pool"
	"github.com/bug-ops/fast-yaml/internal/processor"
	"github.com/bug-ops/fast-yaml/internal/reader"
	"github.com/bug-ops/fast-yaml/internal/report"
)

// Result is the outcome of a single Run: the folded summary, its rendered
// diagnostic text, and the exit code the caller should return.
type Result struct {
	Summary  *core.BatchSummary
	Rendered string
	Code     core.ExitCode
}

// Run executes one full batch: it expands paths into DiscoveredFiles,
// processes them across a worker pool, folds the results, and renders the
// diagnostic-stream text. stdin is consulted only when paths contains the
// single entry "-", per spec.md's stdin-list input mode.
func Run(ctx context.Context, cfg core.Config, paths []string, stdin io.Reader) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	disc, err := discovery.New(cfg.Discovery)
	if err != nil {
		return nil, core.NewConfigError("invalid discovery configuration: %v", err)
	}

	var files []core.DiscoveredFile
	if len(paths) == 1 && paths[0] == "-" {
		files, err = disc.DiscoverFromStream(stdin)
	} else {
		files, err = disc.Discover(paths)
	}
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	slog.Debug("discovery complete", "files", len(files))

	rdr := reader.New(cfg.Execution.MmapThreshold)
	formatter := processor.DefaultFormatter{}
	proc := processor.New(rdr, formatter, cfg.Execution, cfg.Formatting)

	p := pool.New(proc.Process, cfg.Execution.WorkerCount, cfg.Execution.Verbose)
	summary := p.Process(ctx, files)

	renderer := report.NewRenderer()
	rendered := renderer.Render(summary, report.RenderOptions{
		Quiet:    cfg.Reporting.Quiet,
		UseColor: cfg.Reporting.UseColor,
	})

	code := core.ExitSuccess
	if summary.Failed > 0 {
		code = core.ExitPartial
	}

	return &Result{Summary: summary, Rendered: rendered, Code: code}, nil
}
