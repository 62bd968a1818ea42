package core

import "fmt"

// Kind identifies the category of an Error. The two families -- discovery
// kinds and processing kinds -- are disjoint; a discovery kind never appears
// on a per-file processing failure and vice versa.
type Kind string

// Discovery kinds: surfaced before processing begins, either aborting the
// whole batch (pattern compilation) or demoted to a diagnostic-stream
// warning for a single walked/globbed entry.
const (
	InvalidPattern  Kind = "invalid_pattern"
	InvalidGlob     Kind = "invalid_glob"
	IOError         Kind = "io_error"
	PermissionDenied Kind = "permission_denied"
	BrokenSymlink   Kind = "broken_symlink"
	PathNotFound    Kind = "path_not_found"
	StdinError      Kind = "stdin_error"
	TooManyPaths    Kind = "too_many_paths"
)

// Processing kinds: always per-file, captured in BatchSummary.Errors, never
// abort the batch.
const (
	ReadError   Kind = "read_error"
	Utf8Error   Kind = "utf8_error"
	ParseError  Kind = "parse_error"
	FormatError Kind = "format_error"
	WriteError  Kind = "write_error"
	MmapError   Kind = "mmap_error"
)

// Error is the single error type used across discovery and processing. It
// carries the triggering path or pattern, a human message, and the kind
// that determines how the caller classifies and exits.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

// NewError constructs an Error with the given kind, path, and wrapped
// cause. msg should be a short human-readable description; the wrapped
// error's text is appended automatically by Error().
func NewError(kind Kind, path, msg string, err error) *Error {
	return &Error{Kind: kind, Path: path, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsDiscoveryKind reports whether k belongs to the discovery-error family.
func IsDiscoveryKind(k Kind) bool {
	switch k {
	case InvalidPattern, InvalidGlob, IOError, PermissionDenied, BrokenSymlink, PathNotFound, StdinError, TooManyPaths:
		return true
	default:
		return false
	}
}

// ConfigError is a fatal error raised during configuration validation,
// before discovery begins. It always maps to ExitError.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError with the given message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// FatalError wraps a discovery-time error that bubbles up and aborts the
// run (pattern compilation failures, or a direct user-supplied path that
// cannot be canonicalized). It carries an explicit exit code so the CLI
// layer can distinguish it from a ConfigError if ever needed, though both
// currently map to ExitError.
type FatalError struct {
	Code int
	Err  *Error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// NewFatalError wraps a discovery Error as a fatal, batch-aborting error.
func NewFatalError(err *Error) *FatalError {
	return &FatalError{Code: int(ExitError), Err: err}
}

// ExitCoded is a generic error carrying an explicit process exit code. The
// CLI layer uses this to report a completed-but-partially-failed batch
// (ExitPartial) without inventing a new FatalError/ConfigError variant for
// what is purely an exit-status concern.
type ExitCoded struct {
	Code    ExitCode
	Message string
}

func (e *ExitCoded) Error() string { return e.Message }

// NewExitCoded builds an ExitCoded error with the given code and message.
func NewExitCoded(code ExitCode, format string, args ...any) *ExitCoded {
	return &ExitCoded{Code: code, Message: fmt.Sprintf(format, args...)}
}
