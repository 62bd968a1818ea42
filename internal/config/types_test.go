package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultProfile_Values verifies that DefaultProfile returns the
// built-in baseline profile.
func TestDefaultProfile_Values(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()
	require.NotNil(t, p)

	assert.Equal(t, []string{"*.yml", "*.yaml"}, p.Include)
	assert.Equal(t, 2, p.IndentWidth)
	assert.Equal(t, "512KiB", p.MmapThreshold)
	assert.Nil(t, p.Extends)
}

// TestDefaultProfile_TriStateBools verifies that fields whose default is true
// (RespectIgnoreFiles, UseColor) are set via non-nil pointers.
func TestDefaultProfile_TriStateBools(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()

	require.NotNil(t, p.RespectIgnoreFiles)
	assert.True(t, *p.RespectIgnoreFiles)

	require.NotNil(t, p.UseColor)
	assert.True(t, *p.UseColor)
}

// TestDefaultProfile_IsFreshCopy verifies that each call returns an independent
// copy so mutations in one caller do not affect others.
func TestDefaultProfile_IsFreshCopy(t *testing.T) {
	t.Parallel()

	p1 := DefaultProfile()
	p2 := DefaultProfile()

	p1.Include = append(p1.Include, "*.yml.bak")
	*p1.UseColor = false

	assert.NotContains(t, p2.Include, "*.yml.bak", "slice mutation must not affect p2")
	assert.True(t, *p2.UseColor, "bool pointer mutation must not affect p2")
}

// TestConfig_ZeroValue verifies that the zero value of Config is usable
// (nil map access is handled gracefully).
func TestConfig_ZeroValue(t *testing.T) {
	t.Parallel()

	var cfg Config
	// A nil map lookup returns the zero value and does not panic.
	p := cfg.Profile["default"]
	assert.Nil(t, p)
}

// TestProfile_ExtendsPointer verifies that the Extends field behaves correctly
// as a string pointer.
func TestProfile_ExtendsPointer(t *testing.T) {
	t.Parallel()

	// nil means no inheritance.
	p := &Profile{}
	assert.Nil(t, p.Extends)

	// Non-nil means inherit from named profile.
	parent := "default"
	p.Extends = &parent
	require.NotNil(t, p.Extends)
	assert.Equal(t, "default", *p.Extends)
}
