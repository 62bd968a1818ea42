package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfigDebug builds an isolated command tree containing only
// `fast-yaml config debug` so each test gets a fresh, clean command state
// without interference from the global rootCmd.
func newTestConfigDebug() *cobra.Command {
	root := &cobra.Command{
		Use:           "fast-yaml",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	debugCmd := &cobra.Command{
		Use:  "debug",
		RunE: runConfigDebug,
	}
	debugCmd.Flags().String("profile", "", "profile name to debug")

	cfgCmd.AddCommand(debugCmd)
	root.AddCommand(cfgCmd)
	return root
}

func TestConfigCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "config" {
			found = true
		}
	}
	assert.True(t, found, "config command must be registered on root")
}

func TestConfigDebugCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range configCmd.Commands() {
		if cmd.Use == "debug" {
			found = true
		}
	}
	assert.True(t, found, "config debug command must be registered under config")
}

func TestConfigDebugPrintsProfileName(t *testing.T) {
	dir := t.TempDir()
	root := newTestConfigDebug()

	origFlagValues := flagValues
	flagValues.Dir = dir
	defer func() { flagValues = origFlagValues }()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "debug"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "profile: default")
}

func TestConfigDebugShowsSourceAnnotations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fast-yaml.toml"), []byte(`
[profile.default]
worker_count = 8
`), 0o644))

	root := newTestConfigDebug()
	origFlagValues := flagValues
	flagValues.Dir = dir
	defer func() { flagValues = origFlagValues }()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "debug"})

	require.NoError(t, root.Execute())

	output := buf.String()
	assert.Contains(t, output, "worker_count")
	assert.Contains(t, output, "repo")
}

func TestConfigDebugNamedProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fast-yaml.toml"), []byte(`
[profile.ci]
worker_count = 16
`), 0o644))

	root := newTestConfigDebug()
	origFlagValues := flagValues
	flagValues.Dir = dir
	defer func() { flagValues = origFlagValues }()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "debug", "--profile", "ci"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "profile: ci")
}

func TestConfigDebugUnknownProfileErrors(t *testing.T) {
	dir := t.TempDir()
	root := newTestConfigDebug()
	origFlagValues := flagValues
	flagValues.Dir = dir
	defer func() { flagValues = origFlagValues }()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "debug", "--profile", "nonexistent"})

	err := root.Execute()
	assert.Error(t, err)
}
