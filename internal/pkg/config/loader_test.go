package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Test Group 1: LoadEnvString
// ============================================================================

func TestLoadEnvString_WithValue(t *testing.T) {
	t.Setenv("TEST_STRING", "custom_value")

	result := LoadEnvString("TEST_STRING", "default_value")

	assert.Equal(t, "custom_value", result)
}

func TestLoadEnvString_WithoutValue(t *testing.T) {
	// Don't set TEST_STRING

	result := LoadEnvString("TEST_STRING", "default_value")

	assert.Equal(t, "default_value", result)
}

func TestLoadEnvString_EmptyString(t *testing.T) {
	t.Setenv("TEST_STRING", "")

	result := LoadEnvString("TEST_STRING", "default_value")

	// Empty string should use default
	assert.Equal(t, "default_value", result)
}

// ============================================================================
// Test Group 2: LoadEnvDuration
// ============================================================================

func TestLoadEnvDuration_WithValidValue(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "45s")

	result := LoadEnvDuration("TEST_INTERVAL", 20*time.Second, func(d time.Duration) error {
		return ValidateDuration(d, 5*time.Second, 10*time.Minute)
	})

	assert.Equal(t, 45*time.Second, result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration_WithoutValue(t *testing.T) {
	// Don't set TEST_INTERVAL

	result := LoadEnvDuration("TEST_INTERVAL", 20*time.Second, nil)

	assert.Equal(t, 20*time.Second, result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration_ParseFailure(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "often")

	result := LoadEnvDuration("TEST_INTERVAL", 20*time.Second, nil)

	assert.Equal(t, 20*time.Second, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_INTERVAL='often'")
	assert.Contains(t, result.Warnings[0], "falling back to default")
}

func TestLoadEnvDuration_ValidationFailure(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "1s")

	result := LoadEnvDuration("TEST_INTERVAL", 20*time.Second, func(d time.Duration) error {
		return ValidateDuration(d, 5*time.Second, 10*time.Minute)
	})

	assert.Equal(t, 20*time.Second, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "below minimum")
}

func TestLoadEnvDuration_NoValidator(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "72h")

	result := LoadEnvDuration("TEST_INTERVAL", 20*time.Second, nil)

	// Without validator, any parseable duration is accepted
	assert.Equal(t, 72*time.Hour, result.Value)
	assert.False(t, result.FallbackApplied)
}

// ============================================================================
// Test Group 3: LoadEnvInt
// ============================================================================

func TestLoadEnvInt_WithValidValue(t *testing.T) {
	t.Setenv("TEST_CAPACITY", "2500")

	result := LoadEnvInt("TEST_CAPACITY", 5000, func(v int) error {
		return ValidateIntRange(v, 100, 100000)
	})

	assert.Equal(t, 2500, result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_WithoutValue(t *testing.T) {
	result := LoadEnvInt("TEST_CAPACITY", 5000, nil)

	assert.Equal(t, 5000, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_ParseFailure(t *testing.T) {
	t.Setenv("TEST_CAPACITY", "lots")

	result := LoadEnvInt("TEST_CAPACITY", 5000, nil)

	assert.Equal(t, 5000, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_CAPACITY='lots'")
}

func TestLoadEnvInt_ValidationFailure(t *testing.T) {
	t.Setenv("TEST_CAPACITY", "50")

	result := LoadEnvInt("TEST_CAPACITY", 5000, func(v int) error {
		return ValidateIntRange(v, 100, 100000)
	})

	assert.Equal(t, 5000, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "below minimum")
}
