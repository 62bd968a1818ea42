package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable name constants for FASTYAML_ prefixed overrides.
const (
	// EnvProfile selects the named profile to activate.
	EnvProfile = "FASTYAML_PROFILE"
	// EnvInclude overrides the include-pattern list (comma-separated).
	EnvInclude = "FASTYAML_INCLUDE"
	// EnvExclude overrides the exclude-pattern list (comma-separated).
	EnvExclude = "FASTYAML_EXCLUDE"
	// EnvIndentWidth overrides the formatter indent width.
	EnvIndentWidth = "FASTYAML_INDENT_WIDTH"
	// EnvWorkerCount overrides the worker pool size.
	EnvWorkerCount = "FASTYAML_WORKER_COUNT"
	// EnvMmapThreshold overrides the mmap-vs-full-read byte threshold.
	EnvMmapThreshold = "FASTYAML_MMAP_THRESHOLD"
	// EnvInPlace overrides the in-place rewrite flag.
	EnvInPlace = "FASTYAML_IN_PLACE"
	// EnvDryRun overrides the dry-run flag.
	EnvDryRun = "FASTYAML_DRY_RUN"
	// EnvLogFormat overrides the log output format (not a profile field).
	EnvLogFormat = "FASTYAML_LOG_FORMAT"
	// EnvDebug enables debug-level logging (not a profile field).
	EnvDebug = "FASTYAML_DEBUG"
)

// buildEnvMap reads FASTYAML_* environment variables and returns a flat map
// suitable for use with a koanf confmap provider. Only non-empty env vars
// that parse successfully are included. Invalid numeric/boolean values are
// silently skipped so that a bad env var does not block the entire
// resolution pipeline.
func buildEnvMap() map[string]any {
	m := make(map[string]any)

	if v := os.Getenv(EnvInclude); v != "" {
		m["include"] = splitCommaList(v)
	}
	if v := os.Getenv(EnvExclude); v != "" {
		m["exclude"] = splitCommaList(v)
	}
	if v := os.Getenv(EnvIndentWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["indent_width"] = n
		}
	}
	if v := os.Getenv(EnvWorkerCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["worker_count"] = n
		}
	}
	if v := os.Getenv(EnvMmapThreshold); v != "" {
		m["mmap_threshold"] = v
	}
	if v := os.Getenv(EnvInPlace); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m["in_place"] = b
		}
	}
	if v := os.Getenv(EnvDryRun); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m["dry_run"] = b
		}
	}

	return m
}

func splitCommaList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
