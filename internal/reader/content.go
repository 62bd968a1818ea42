// Package reader implements the adaptive file reader (component C1):
// choosing between a full in-memory read and a read-only memory map based
// on file size, with a safe fallback when mapping fails.
package reader

import (
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

// Content is a tagged view over either an owned in-memory buffer or a
// read-only memory map. Both variants are exposed through the same text
// accessor; callers should never need to branch on which one they hold
// except via IsMmap, reserved for diagnostics.
//
// The mapped variant validates UTF-8 lazily, on first access to Bytes/String.
// The owned variant is assumed valid -- it was read directly as the bytes
// that will be handed to the formatter.
type Content struct {
	owned []byte
	mm    mmap.MMap
	isMap bool

	validated bool
	valid     bool
}

// newOwned wraps a fully-read, owned buffer.
func newOwned(b []byte) *Content {
	return &Content{owned: b}
}

// newMapped wraps a memory-mapped region.
func newMapped(m mmap.MMap) *Content {
	return &Content{mm: m, isMap: true}
}

// raw returns the underlying byte slice regardless of variant.
func (c *Content) raw() []byte {
	if c.isMap {
		return c.mm
	}
	return c.owned
}

// Bytes returns the content's bytes, validating UTF-8 on first call for the
// mapped variant. Returns an error if the mapped region is not valid UTF-8.
func (c *Content) Bytes() ([]byte, error) {
	if !c.isMap {
		return c.owned, nil
	}
	if !c.validated {
		c.valid = utf8.Valid(c.mm)
		c.validated = true
	}
	if !c.valid {
		return nil, errInvalidUTF8
	}
	return c.mm, nil
}

// String is a convenience wrapper over Bytes that converts to string.
func (c *Content) String() (string, error) {
	b, err := c.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsMmap reports whether this Content is backed by a memory map. Reserved
// for diagnostics; the Processor must not otherwise branch on it.
func (c *Content) IsMmap() bool {
	return c.isMap
}

// Close releases the memory map, if any. It is a no-op for the owned
// variant. Close must be called exactly once, before the Processor
// invocation that created this Content returns.
func (c *Content) Close() error {
	if c.isMap && c.mm != nil {
		err := c.mm.Unmap()
		c.mm = nil
		return err
	}
	return nil
}
