package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nonexistentGlobal returns a path to a file that does not exist, suitable for
// use as GlobalConfigPath when the test wants to disable global config loading.
func nonexistentGlobal(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nonexistent-global.toml")
}

// writeRepoConfig writes fast-yaml.toml into dir and returns dir.
func writeRepoConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fast-yaml.toml"), []byte(content), 0o644))
	return dir
}

// ── Scenario 1: defaults only ─────────────────────────────────────────────────

// TestIntegration_Scenario1_DefaultsOnly verifies that when no fast-yaml.toml
// is present and no env vars or CLI flags are set, Resolve returns the
// built-in DefaultProfile values.
func TestIntegration_Scenario1_DefaultsOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)

	rc, err := Resolve(ResolveOptions{
		TargetDir:        t.TempDir(),
		GlobalConfigPath: nonexistentGlobal(t),
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	want := DefaultProfile()
	assert.Equal(t, want.Include, rc.Profile.Include, "include must equal DefaultProfile")
	assert.Equal(t, want.IndentWidth, rc.Profile.IndentWidth, "indent_width must equal DefaultProfile")
	assert.Equal(t, want.MmapThreshold, rc.Profile.MmapThreshold, "mmap_threshold must equal DefaultProfile")
	assert.Equal(t, want.WorkerCount, rc.Profile.WorkerCount, "worker_count must equal DefaultProfile")

	// Spot-check expected values directly for clarity.
	assert.Equal(t, []string{"*.yml", "*.yaml"}, rc.Profile.Include)
	assert.Equal(t, 2, rc.Profile.IndentWidth)
	assert.Equal(t, "512KiB", rc.Profile.MmapThreshold)

	assert.Equal(t, "default", rc.ProfileName)
}

// ── Scenario 2: repo config only ──────────────────────────────────────────────

// TestIntegration_Scenario2_RepoConfig verifies that a fast-yaml.toml in the
// target directory overrides the built-in defaults.
func TestIntegration_Scenario2_RepoConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.default]
worker_count = 8
indent_width = 4
`)

	rc, err := Resolve(ResolveOptions{
		TargetDir:        dir,
		GlobalConfigPath: nonexistentGlobal(t),
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	assert.Equal(t, 8, rc.Profile.WorkerCount, "repo fast-yaml.toml must set WorkerCount=8")
	assert.Equal(t, 4, rc.Profile.IndentWidth, "repo fast-yaml.toml must set IndentWidth=4")

	// mmap_threshold was not set in the repo config; it must still be the default.
	assert.Equal(t, DefaultProfile().MmapThreshold, rc.Profile.MmapThreshold,
		"mmap_threshold not in repo config must remain at default")

	// Source attribution: repo-set fields come from SourceRepo.
	assert.Equal(t, SourceRepo, rc.Sources["worker_count"])
	assert.Equal(t, SourceRepo, rc.Sources["indent_width"])
}

// ── Scenario 3: global config + repo config ────────────────────────────────────

// TestIntegration_Scenario3_GlobalPlusRepo verifies that the global config
// and the repo config merge correctly with repo taking precedence.
func TestIntegration_Scenario3_GlobalPlusRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)

	globalDir := t.TempDir()
	globalPath := filepath.Join(globalDir, "global.toml")
	require.NoError(t, os.WriteFile(globalPath, []byte(`
[profile.default]
mmap_threshold = "1MiB"
`), 0o644))

	repoDir := writeRepoConfig(t, t.TempDir(), `
[profile.default]
worker_count = 16
`)

	rc, err := Resolve(ResolveOptions{
		TargetDir:        repoDir,
		GlobalConfigPath: globalPath,
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	// global.toml sets mmap_threshold="1MiB"; repo config sets worker_count=16.
	assert.Equal(t, "1MiB", rc.Profile.MmapThreshold,
		"mmap_threshold from global config must be applied")
	assert.Equal(t, 16, rc.Profile.WorkerCount,
		"worker_count from repo config must override global")

	// Source attribution.
	assert.Equal(t, SourceGlobal, rc.Sources["mmap_threshold"],
		"mmap_threshold must be attributed to global source")
	assert.Equal(t, SourceRepo, rc.Sources["worker_count"],
		"worker_count must be attributed to repo source")
}

// ── Scenario 4: profile inheritance ───────────────────────────────────────────

// TestIntegration_Scenario4_Inheritance verifies profile inheritance:
// child -> base -> default, verifying that each level gets the right values.
func TestIntegration_Scenario4_Inheritance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.base]
indent_width = 4
worker_count = 8

[profile.child]
extends = "base"
indent_width = 6
`)

	tests := []struct {
		profileName     string
		wantIndentWidth int
		wantWorkerCount int
	}{
		{profileName: "default", wantIndentWidth: 2, wantWorkerCount: 0},
		{profileName: "base", wantIndentWidth: 4, wantWorkerCount: 8},
		{profileName: "child", wantIndentWidth: 6, wantWorkerCount: 8},
	}

	for _, tt := range tests {
		t.Run(tt.profileName, func(t *testing.T) {
			clearFastYAMLEnv(t)

			rc, err := Resolve(ResolveOptions{
				ProfileName:      tt.profileName,
				TargetDir:        dir,
				GlobalConfigPath: nonexistentGlobal(t),
			})

			require.NoError(t, err)
			require.NotNil(t, rc)

			assert.Equal(t, tt.wantIndentWidth, rc.Profile.IndentWidth,
				"profile %q: unexpected indent_width", tt.profileName)
			assert.Equal(t, tt.wantWorkerCount, rc.Profile.WorkerCount,
				"profile %q: unexpected worker_count", tt.profileName)
			assert.Equal(t, tt.profileName, rc.ProfileName)
		})
	}
}

// ── Scenario 5: env var overrides ─────────────────────────────────────────────

// TestIntegration_Scenario5_EnvOverrides verifies that FASTYAML_WORKER_COUNT
// overrides the repo config value.
func TestIntegration_Scenario5_EnvOverrides(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)
	t.Setenv(EnvWorkerCount, "24")

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.default]
worker_count = 8
`)

	rc, err := Resolve(ResolveOptions{
		TargetDir:        dir,
		GlobalConfigPath: nonexistentGlobal(t),
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	// The repo config sets worker_count=8 but the env var sets 24.
	assert.Equal(t, 24, rc.Profile.WorkerCount,
		"FASTYAML_WORKER_COUNT=24 must override repo config's 8")

	// Source attribution.
	assert.Equal(t, SourceEnv, rc.Sources["worker_count"],
		"worker_count must be attributed to env source")
}

// ── Scenario 6: CLI flags override env ────────────────────────────────────────

// TestIntegration_Scenario6_CLIFlags verifies that explicit CLI flags override
// both env vars and repo config values.
func TestIntegration_Scenario6_CLIFlags(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)
	t.Setenv(EnvWorkerCount, "24")

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.default]
worker_count = 8
`)

	rc, err := Resolve(ResolveOptions{
		TargetDir:        dir,
		GlobalConfigPath: nonexistentGlobal(t),
		CLIFlags:         map[string]any{"worker_count": 32},
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	// CLI flag (32) must win over env var (24) and repo config (8).
	assert.Equal(t, 32, rc.Profile.WorkerCount,
		"CLI flag worker_count=32 must override env FASTYAML_WORKER_COUNT=24")

	// Source attribution.
	assert.Equal(t, SourceFlag, rc.Sources["worker_count"],
		"worker_count must be attributed to flag source")
}

// ── Scenario 7: resolve still succeeds on a profile that fails validation ────

// TestIntegration_Scenario7_ResolveThenValidate verifies that Resolve and
// Validate compose: resolving a profile with an out-of-range indent width
// still succeeds, and the problem surfaces only when Validate is run over
// the raw loaded config.
func TestIntegration_Scenario7_ResolveThenValidate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.default]
indent_width = 20
`)

	cfg, err := LoadFromFile(filepath.Join(dir, "fast-yaml.toml"))
	require.NoError(t, err)

	issues := Validate(cfg)
	found := false
	for _, issue := range issues {
		if issue.Severity == "error" {
			found = true
		}
	}
	assert.True(t, found, "out-of-range indent_width must be reported as a validation error")

	rc, err := Resolve(ResolveOptions{
		TargetDir:        dir,
		GlobalConfigPath: nonexistentGlobal(t),
	})
	require.NoError(t, err, "Resolve itself does not enforce Validate")
	assert.Equal(t, 20, rc.Profile.IndentWidth)
}

// ── Scenario 8: complex ci profile ────────────────────────────────────────────

// TestIntegration_Scenario8_ComplexCIProfile verifies that a profile with all
// advanced fields set resolves correctly end to end.
func TestIntegration_Scenario8_ComplexCIProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	clearFastYAMLEnv(t)

	dir := writeRepoConfig(t, t.TempDir(), `
[profile.ci]
include = ["**/*.yaml"]
exclude = ["vendor/**", "testdata/**"]
max_depth = 15
include_hidden = false
respect_ignore_files = true
follow_symlinks = false
git_tracked_only = true
indent_width = 4
max_line_width = 100
explicit_start = true
worker_count = 16
mmap_threshold = "2MiB"
in_place = true
dry_run = false
verbose = false
quiet = true
use_color = false
`)

	rc, err := Resolve(ResolveOptions{
		ProfileName:      "ci",
		TargetDir:        dir,
		GlobalConfigPath: nonexistentGlobal(t),
	})

	require.NoError(t, err)
	require.NotNil(t, rc)

	assert.Equal(t, []string{"**/*.yaml"}, rc.Profile.Include)
	assert.Equal(t, []string{"vendor/**", "testdata/**"}, rc.Profile.Exclude)
	assert.Equal(t, 15, rc.Profile.MaxDepth)
	assert.True(t, rc.Profile.GitTrackedOnly)
	assert.Equal(t, 4, rc.Profile.IndentWidth)
	assert.Equal(t, 100, rc.Profile.MaxLineWidth)
	assert.True(t, rc.Profile.ExplicitStart)
	assert.Equal(t, 16, rc.Profile.WorkerCount)
	assert.Equal(t, "2MiB", rc.Profile.MmapThreshold)
	assert.True(t, rc.Profile.InPlace)
	assert.True(t, rc.Profile.Quiet)
	if assert.NotNil(t, rc.Profile.UseColor) {
		assert.False(t, *rc.Profile.UseColor)
	}

	assert.Equal(t, "ci", rc.ProfileName)
}
