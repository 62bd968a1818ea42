// Package processor implements component C3: reading a single file,
// running it through the external formatter, and deciding whether and how
// to write the result back.
package processor

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bug-ops/fast-yaml/internal/core"
)

// Formatter is the external collaborator the Processor calls once per
// file. It must be a pure function of its inputs: no package-level
// mutable state, safe to call concurrently from many workers without
// external locking.
type Formatter interface {
	Format(input string, cfg core.FormattingConfig) (string, error)
}

// DefaultFormatter re-renders a YAML document through gopkg.in/yaml.v3's
// Node tree, which preserves comments, anchors, and key order rather than
// round-tripping through a generic map.
type DefaultFormatter struct{}

// Format decodes input into a yaml.Node and re-encodes it with the given
// indent width and explicit-document-start setting. cfg.MaxLineWidth is
// accepted for interface symmetry with the spec's opaque-config contract
// but yaml.v3's encoder has no line-wrap knob to forward it to.
func (DefaultFormatter) Format(input string, cfg core.FormattingConfig) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", fmt.Errorf("parsing yaml: %w", err)
	}

	// An empty document decodes to a zero Node; nothing to re-encode.
	if doc.Kind == 0 {
		return input, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth(cfg.IndentWidth))

	if err := enc.Encode(&doc); err != nil {
		_ = enc.Close()
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("closing yaml encoder: %w", err)
	}

	out := buf.String()
	if cfg.ExplicitStart && len(out) > 0 {
		out = "---\n" + out
	}

	return out, nil
}

func indentWidth(w int) int {
	if w < 2 {
		return 2
	}
	if w > 8 {
		return 8
	}
	return w
}
