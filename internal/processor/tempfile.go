package processor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// atomicRewrite writes content to a sibling temporary file in the target's
// directory, then renames it over target. The temp name carries a random
// uuid suffix per spec.md's requirement that it not be a fixed extension
// like ".tmp", which could collide across concurrent invocations touching
// the same file. On any failure after the temp file is created, it is
// removed on a best-effort basis.
func atomicRewrite(target, content string) *core.Error {
	dir := filepath.Dir(target)
	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.New().String()))

	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return core.NewError(core.WriteError, target, "creating temp file", err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return core.NewError(core.WriteError, target, "writing temp file", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return core.NewError(core.WriteError, target, "closing temp file", err)
	}

	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return core.NewError(core.WriteError, target, "renaming temp file over target", err)
	}

	return nil
}
