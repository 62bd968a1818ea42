package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// RenderOptions controls Renderer.Render's output.
type RenderOptions struct {
	// Quiet suppresses the summary and per-error lines unless the batch
	// has at least one failure.
	Quiet bool

	// UseColor enables ANSI coloring of status words. When false, the
	// renderer is forced to termenv.Ascii so every byte it emits is plain
	// text -- all information stays recoverable with color disabled.
	UseColor bool
}

// Renderer formats a BatchSummary as the diagnostic-stream text spec.md
// section 4.5 describes: one line per processing error, followed by a
// one-line summary with zero-valued subcounts omitted.
type Renderer struct{}

// NewRenderer returns a Renderer. It holds no state.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the full diagnostic-stream text for summary. An empty
// batch (no files discovered at all) renders the informational "no files
// found" message instead of a zero-count summary line.
func (r *Renderer) Render(summary *core.BatchSummary, opts RenderOptions) string {
	if summary.Total == 0 {
		if opts.Quiet {
			return ""
		}
		return "no files found\n"
	}

	styles := newStatusStyles(opts.UseColor)

	var b strings.Builder
	for _, fe := range summary.Errors {
		fmt.Fprintf(&b, "%s: %s\n", fe.Path, fe.Err.Error())
	}

	if opts.Quiet && summary.Failed == 0 {
		return b.String()
	}

	b.WriteString(r.summaryLine(summary, styles))
	b.WriteString("\n")

	return b.String()
}

func (r *Renderer) summaryLine(summary *core.BatchSummary, styles statusStyles) string {
	var label string
	if summary.Failed > 0 {
		label = styles.failed.Render("Completed") + " with errors"
	} else {
		label = styles.completed.Render("Completed")
	}

	var parts []string
	if summary.Formatted > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", summary.Formatted, styles.formatted.Render("formatted")))
	}
	if summary.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", summary.Unchanged, styles.unchanged.Render("unchanged")))
	}
	if summary.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", summary.Skipped, styles.skipped.Render("skipped")))
	}
	if summary.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", summary.Failed, styles.failed.Render("failed")))
	}

	millis := float64(summary.Duration.Microseconds()) / 1000.0

	if len(parts) == 0 {
		return fmt.Sprintf("%s: %d files in %.0fms", label, summary.Total, millis)
	}
	return fmt.Sprintf("%s: %d files, %s in %.0fms", label, summary.Total, strings.Join(parts, ", "), millis)
}

type statusStyles struct {
	completed lipgloss.Style
	formatted lipgloss.Style
	unchanged lipgloss.Style
	skipped   lipgloss.Style
	failed    lipgloss.Style
}

// newStatusStyles builds the status-word styles scoped to the five words
// spec.md section 4.5 names: Formatted, Unchanged, Skipped, Failed,
// Completed. When useColor is false the renderer's profile is forced to
// termenv.Ascii, so Render's output contains no escape sequences and every
// piece of information (counts, words, errors) stays fully readable.
func newStatusStyles(useColor bool) statusStyles {
	renderer := lipgloss.NewRenderer(os.Stderr)
	if !useColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return statusStyles{
		completed: renderer.NewStyle().Bold(true),
		formatted: renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}),
		unchanged: renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		skipped:   renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}),
		failed:    renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}),
	}
}
