package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bug-ops/fast-yaml/internal/core"
)

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Reporting.Quiet = true
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_DryRunReportsUnformattedWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "b:   1\na:   2\n")

	cfg := testConfig()
	cfg.Execution.DryRun = true

	result, err := Run(context.Background(), cfg, []string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, core.ExitSuccess, result.Code)
	assert.Equal(t, 1, result.Summary.Total)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b:   1\na:   2\n", string(raw), "dry-run must not modify the file on disk")
}

func TestRun_InPlaceRewritesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "b:   1\na:   2\n")

	cfg := testConfig()
	cfg.Execution.InPlace = true

	result, err := Run(context.Background(), cfg, []string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, core.ExitSuccess, result.Code)
	assert.Equal(t, 1, result.Summary.Formatted)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "b:   1\na:   2\n", string(raw))
}

func TestRun_AlreadyFormattedFileIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "a: 2\nb: 1\n")

	cfg := testConfig()
	cfg.Execution.InPlace = true

	result, err := Run(context.Background(), cfg, []string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Unchanged)
	assert.Equal(t, 0, result.Summary.Formatted)
}

func TestRun_MultipleFilesAcrossWorkerPool(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, dir, "f"+string(rune('a'+i))+".yaml", "z:   1\na:   2\n")
	}

	cfg := testConfig()
	cfg.Execution.InPlace = true
	cfg.Execution.WorkerCount = 4

	result, err := Run(context.Background(), cfg, []string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Summary.Total)
	assert.Equal(t, 5, result.Summary.Formatted)
}

func TestRun_InvalidYAMLIsReportedAsFailed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "key: [unterminated\n")

	cfg := testConfig()
	cfg.Execution.InPlace = true

	result, err := Run(context.Background(), cfg, []string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.Equal(t, core.ExitPartial, result.Code)
}

func TestRun_StdinPathModeReadsFileList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "a: 1\n")

	cfg := testConfig()
	stdin := strings.NewReader(path + "\n")

	result, err := Run(context.Background(), cfg, []string{"-"}, stdin)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Total)
}

func TestRun_InvalidConfigReturnsError(t *testing.T) {
	cfg := testConfig()
	cfg.Execution.WorkerCount = -1

	_, err := Run(context.Background(), cfg, []string{"."}, nil)
	assert.Error(t, err)
}

func TestRun_RenderedOutputNotEmptyWhenNotQuiet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a: 1\n")

	cfg := testConfig()
	cfg.Reporting.Quiet = false

	result, err := Run(context.Background(), cfg, []string{dir}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Rendered)
}
