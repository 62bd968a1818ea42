// Package core defines the central data types shared across the discovery,
// processing, pooling, and reporting stages of fast-yaml. These types serve
// as the data backbone of the batch pipeline.
//
// This package has zero external dependencies -- only stdlib types. It
// contains only data types and lightweight validation helpers; no business
// logic beyond invariant checks.
package core

import "time"

// ExitCode represents the process exit code returned by the fast-yaml CLI.
type ExitCode int

const (
	// ExitSuccess indicates the batch completed with no failed files.
	ExitSuccess ExitCode = 0

	// ExitError indicates a fatal, pre-batch error: invalid configuration or
	// a discovery-time error tied to a direct user-supplied path.
	ExitError ExitCode = 1

	// ExitPartial indicates the batch ran to completion but one or more
	// files failed processing.
	ExitPartial ExitCode = 2
)

// Origin records how a DiscoveredFile entered the batch.
type Origin string

const (
	// DirectPath is an input string that named an existing regular file.
	DirectPath Origin = "direct"

	// DirectoryWalk is a file found by recursively walking an input
	// directory.
	DirectoryWalk Origin = "walk"

	// GlobExpansion is a file matched by expanding an input string that did
	// not name an existing path, treated as a glob pattern.
	GlobExpansion Origin = "glob"

	// StdinList is a file named by a line read from a stream-of-paths
	// input.
	StdinList Origin = "stdin"
)

// DiscoveredFile is the unit of work handed from Discovery to the Pool. Path
// is always a canonical, symlink-resolved, absolute path; canonicalization
// is what makes Path suitable as a deduplication key.
type DiscoveredFile struct {
	Path   string
	Origin Origin
}

// Outcome is the terminal state of processing a single file. Exactly one of
// the typed constructors below is used to build a FileResult; there is no
// intermediate or retryable state.
type Outcome struct {
	kind    outcomeKind
	changed bool
	err     *Error
}

type outcomeKind int

const (
	outcomeFormatted outcomeKind = iota
	outcomeUnchanged
	outcomeSkipped
	outcomeFailed
)

// Formatted builds an Outcome reporting that the formatter produced
// different bytes than the input. changed is always true for this
// constructor; the spec's Formatted{changed:false} case is represented as
// Unchanged instead (see Aggregator.Fold).
func Formatted(changed bool) Outcome {
	return Outcome{kind: outcomeFormatted, changed: changed}
}

// Unchanged builds an Outcome reporting that the formatter's output was
// byte-for-byte identical to the input.
func Unchanged() Outcome {
	return Outcome{kind: outcomeUnchanged}
}

// Skipped builds an Outcome reporting that a change was computed but
// suppressed, because in_place and dry_run were both set.
func Skipped() Outcome {
	return Outcome{kind: outcomeSkipped}
}

// Failed builds an Outcome wrapping a processing error.
func Failed(err *Error) Outcome {
	return Outcome{kind: outcomeFailed, err: err}
}

// IsFormatted reports whether the outcome is Formatted{changed:true}. A
// Formatted{changed:false} outcome never exists in practice (the Processor
// collapses that case into Unchanged before it reaches the caller) but the
// accessor is shaped to match the spec's semantics regardless.
func (o Outcome) IsFormatted() bool { return o.kind == outcomeFormatted && o.changed }
func (o Outcome) IsUnchanged() bool { return o.kind == outcomeUnchanged }
func (o Outcome) IsSkipped() bool   { return o.kind == outcomeSkipped }
func (o Outcome) IsFailed() bool    { return o.kind == outcomeFailed }

// Err returns the wrapped error for a Failed outcome, or nil otherwise.
func (o Outcome) Err() *Error { return o.err }

// FileResult is the value a Processor invocation produces for one
// DiscoveredFile.
type FileResult struct {
	Path     string
	Outcome  Outcome
	Duration time.Duration
}

// BatchSummary is the folded result of an entire batch run. The invariant
// Total == Formatted+Unchanged+Skipped+Failed and len(Errors) == Failed
// always holds for a summary produced by Aggregator.Fold.
type BatchSummary struct {
	Total     int
	Formatted int
	Unchanged int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Errors    []FileError
}

// FileError pairs a failing path with the error that caused the failure,
// preserving the order in which the pool observed the failure.
type FileError struct {
	Path string
	Err  *Error
}
