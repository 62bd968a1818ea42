package config

import (
	"strings"
	"testing"
)

// FuzzConfigParse feeds arbitrary byte sequences to LoadFromString to verify
// that the parser never panics regardless of input. On valid-looking TOML
// input, it additionally checks that either an error or a non-nil Config is
// returned (never both nil with no error).
func FuzzConfigParse(f *testing.F) {
	// Seed corpus: valid TOMLs covering different schema areas.
	f.Add([]byte(``))
	f.Add([]byte(`[profile.default]`))
	f.Add([]byte(`
[profile.default]
include = ["*.yml", "*.yaml"]
indent_width = 2
mmap_threshold = "512KiB"
in_place = false
dry_run = true
`))
	f.Add([]byte(`
[profile.default]
exclude = ["vendor/**"]
max_depth = 10
worker_count = 8
explicit_start = true
`))
	f.Add([]byte(`
[profile.base]
indent_width = 2
worker_count = 4

[profile.child]
extends = "base"
indent_width = 4
`))
	f.Add([]byte(`
[profile.default]
include_hidden = true
respect_ignore_files = false
follow_symlinks = true
git_tracked_only = true
`))
	f.Add([]byte(`
[profile.default]
verbose = true
quiet = false
use_color = false
`))
	// Edge cases: truncated, binary-ish, duplicate keys.
	f.Add([]byte(`[profile`))
	f.Add([]byte(`[profile.`))
	f.Add([]byte(`[[profile]]`))
	f.Add([]byte("indent_width = 2\x00worker_count = 100"))
	f.Add([]byte(`
[profile.default]
max_depth = 99999999999999999999999999
`))
	f.Add([]byte(strings.Repeat("[profile.x]\nindent_width = 2\n", 50)))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic under any input.
		cfg, err := LoadFromString(string(data), "fuzz")

		// Invariant: if err == nil then cfg must be non-nil.
		if err == nil && cfg == nil {
			t.Fatal("LoadFromString returned nil config with nil error")
		}
		// If cfg is non-nil, calling Validate must not panic.
		if cfg != nil {
			_ = Validate(cfg)
		}
	})
}

// FuzzValidate feeds random Config structs (parsed from arbitrary TOML) into
// the Validate function to verify it never panics.
func FuzzValidate(f *testing.F) {
	// Seed corpus: configs with various validation edge cases.
	f.Add([]byte(`
[profile.default]
indent_width = 2
worker_count = 4
mmap_threshold = "512KiB"
`))
	f.Add([]byte(`
[profile.bad]
indent_width = 99
max_depth = -1
worker_count = -5
mmap_threshold = "notasize"
`))
	f.Add([]byte(`
[profile.hardcap]
worker_count = 999999
`))
	f.Add([]byte(`
[profile.a]
extends = "b"

[profile.b]
extends = "a"
`))
	f.Add([]byte(`
[profile.default]
include = ["src/**"]
dry_run = true
`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := LoadFromString(string(data), "fuzz-validate")
		if err != nil || cfg == nil {
			return
		}
		// Must not panic.
		_ = Validate(cfg)
		// Lint also must not panic.
		_ = Lint(cfg)
	})
}
