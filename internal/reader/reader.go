package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/bug-ops/fast-yaml/internal/core"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Reader implements component C1: a single operation that opens a file and
// exposes its bytes as a Content, choosing between a full read and a
// memory map by size, with a safe fallback.
type Reader struct {
	// Threshold is the file-size boundary, in bytes, at or above which
	// mapping is attempted. A file strictly below Threshold is always
	// fully read.
	Threshold int64

	logger *slog.Logger
}

// New creates a Reader with the given mmap threshold.
func New(threshold int64) *Reader {
	if threshold < 0 {
		threshold = core.DefaultMmapThreshold
	}
	return &Reader{
		Threshold: threshold,
		logger:    slog.Default().With("component", "reader"),
	}
}

// Read stats path and either fully reads it or memory-maps it, returning a
// Content the caller must Close. On any mmap failure it falls back to a
// full read rather than failing the operation.
func (r *Reader) Read(path string) (*Content, *core.Error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.NewError(core.PathNotFound, path, "file not found", err)
		}
		if errors.Is(err, os.ErrPermission) {
			return nil, core.NewError(core.PermissionDenied, path, "permission denied", err)
		}
		return nil, core.NewError(core.ReadError, path, "stat failed", err)
	}

	if info.Size() < r.Threshold {
		return r.readFull(path)
	}

	content, mapErr := r.readMapped(path)
	if mapErr == nil {
		return content, nil
	}

	r.logger.Debug("mmap failed, falling back to full read",
		"path", path,
		"error", mapErr,
	)
	return r.readFull(path)
}

func (r *Reader) readFull(path string) (*Content, *core.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyReadError(path, err)
	}
	return newOwned(data), nil
}

func (r *Reader) readMapped(path string) (*Content, *core.Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyReadError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, core.NewError(core.MmapError, path, "stat failed before mmap", err)
	}

	if info.Size() == 0 {
		return newOwned(nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, core.NewError(core.MmapError, path, "mmap failed", err)
	}

	return newMapped(m), nil
}

func classifyReadError(path string, err error) *core.Error {
	if errors.Is(err, os.ErrNotExist) {
		return core.NewError(core.PathNotFound, path, "file not found", err)
	}
	if errors.Is(err, os.ErrPermission) {
		return core.NewError(core.PermissionDenied, path, "permission denied", err)
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return core.NewError(core.BrokenSymlink, path, fmt.Sprintf("broken symlink: %v", linkErr), err)
	}
	return core.NewError(core.ReadError, path, "read failed", err)
}
