package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/bug-ops/fast-yaml/internal/core"
	"github.com/bug-ops/fast-yaml/internal/reader"
)

// Processor implements component C3: it turns a single DiscoveredFile into
// a FileResult by reading, formatting, comparing, and (depending on
// configuration) rewriting the file in place. Process never panics; every
// failure is captured in the returned FileResult.
type Processor struct {
	reader    *reader.Reader
	formatter Formatter
	cfg       core.ExecutionConfig
	fmtCfg    core.FormattingConfig
	logger    *slog.Logger
}

// New builds a Processor over the given Reader and Formatter.
func New(r *reader.Reader, formatter Formatter, cfg core.ExecutionConfig, fmtCfg core.FormattingConfig) *Processor {
	return &Processor{
		reader:    r,
		formatter: formatter,
		cfg:       cfg,
		fmtCfg:    fmtCfg,
		logger:    slog.Default().With("component", "processor"),
	}
}

// Process runs the five-step algorithm from spec.md section 4.3: read,
// format, compare, branch on in_place/dry_run, and (if writing) perform an
// atomic rewrite. ctx is accepted for interface symmetry with the Pool's
// cancellation plumbing; no suspension point inside Process actually
// observes it, matching the core's no-cancellation contract.
func (p *Processor) Process(ctx context.Context, df core.DiscoveredFile) core.FileResult {
	start := time.Now()

	content, readErr := p.reader.Read(df.Path)
	if readErr != nil {
		return p.fail(df.Path, readErr, start)
	}
	defer content.Close()

	original, convErr := content.String()
	if convErr != nil {
		return p.fail(df.Path, core.NewError(core.Utf8Error, df.Path, "content is not valid UTF-8", convErr), start)
	}

	formatted, fmtErr := p.formatter.Format(original, p.fmtCfg)
	if fmtErr != nil {
		return p.fail(df.Path, core.NewError(core.FormatError, df.Path, "formatting failed", fmtErr), start)
	}

	if formatted == original {
		return core.FileResult{Path: df.Path, Outcome: core.Unchanged(), Duration: time.Since(start)}
	}

	switch {
	case !p.cfg.InPlace:
		return core.FileResult{Path: df.Path, Outcome: core.Formatted(true), Duration: time.Since(start)}

	case p.cfg.DryRun:
		return core.FileResult{Path: df.Path, Outcome: core.Skipped(), Duration: time.Since(start)}

	default:
		if writeErr := atomicRewrite(df.Path, formatted); writeErr != nil {
			return p.fail(df.Path, writeErr, start)
		}
		return core.FileResult{Path: df.Path, Outcome: core.Formatted(true), Duration: time.Since(start)}
	}
}

func (p *Processor) fail(path string, err *core.Error, start time.Time) core.FileResult {
	p.logger.Debug("processing failed", "path", path, "kind", err.Kind, "error", err)
	return core.FileResult{Path: path, Outcome: core.Failed(err), Duration: time.Since(start)}
}
