// Package pool implements component C4: scheduling a batch of Processor
// invocations across a bounded set of workers and folding the results into
// a BatchSummary.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bug-ops/fast-yaml/internal/core"
	"github.com/bug-ops/fast-yaml/internal/report"
)

// processFunc is the shape of Processor.Process, narrowed so pool doesn't
// need to import the processor package directly.
type processFunc func(ctx context.Context, df core.DiscoveredFile) core.FileResult

// Pool implements the C4 scheduling contract: a work-stealing pool of N
// parallel workers, N = WorkerCount if nonzero else the logical CPU count,
// with a small-batch sequential fallback and atomic progress reporting.
type Pool struct {
	process     processFunc
	workerCount int
	verbose     bool
	logger      *slog.Logger
}

// New builds a Pool that invokes process for each file. workerCount == 0
// means auto-detect the logical CPU count, matching spec.md section 4.4.
func New(process processFunc, workerCount int, verbose bool) *Pool {
	return &Pool{
		process:     process,
		workerCount: workerCount,
		verbose:     verbose,
		logger:      slog.Default().With("component", "pool"),
	}
}

// Process runs process over every file and folds the results into a
// BatchSummary. When workerCount == 0 and the batch is smaller than
// core.SequentialThreshold, the batch runs on the caller's goroutine
// without constructing a pool, avoiding spawn overhead for small batches.
func (p *Pool) Process(ctx context.Context, files []core.DiscoveredFile) *core.BatchSummary {
	if p.workerCount == 0 && len(files) < core.SequentialThreshold {
		return p.processSequential(ctx, files)
	}
	return p.processParallel(ctx, files)
}

func (p *Pool) processSequential(ctx context.Context, files []core.DiscoveredFile) *core.BatchSummary {
	start := time.Now()
	results := make([]core.FileResult, 0, len(files))
	var counter int64

	for _, f := range files {
		result := p.process(ctx, f)
		results = append(results, result)
		p.reportProgress(&counter, len(files), f.Path)
	}

	summary := report.NewAggregator().Fold(results)
	summary.Duration = time.Since(start)
	return &summary
}

func (p *Pool) processParallel(ctx context.Context, files []core.DiscoveredFile) *core.BatchSummary {
	start := time.Now()
	limit := p.workerCount
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]core.FileResult, len(files))
	var counter int64

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = p.process(gctx, f)
			p.reportProgress(&counter, len(files), f.Path)
			return nil
		})
	}

	// errgroup.Wait only returns an error if a worker returned one; process
	// never does, so this is defensive rather than load-bearing.
	if err := g.Wait(); err != nil {
		p.logger.Debug("unexpected pool error", "error", err)
	}

	summary := report.NewAggregator().Fold(results)
	summary.Duration = time.Since(start)
	return &summary
}

var progressMu sync.Mutex

// reportProgress prints "[i/N] <path>" to the diagnostic stream in verbose
// mode. The message is built before the stream lock is acquired, per
// spec.md section 4.4, to minimize lock hold time.
func (p *Pool) reportProgress(counter *int64, total int, path string) {
	if !p.verbose {
		return
	}
	i := atomic.AddInt64(counter, 1)
	msg := fmt.Sprintf("[%d/%d] %s\n", i, total, path)

	progressMu.Lock()
	defer progressMu.Unlock()
	_, _ = os.Stderr.WriteString(msg)
}
