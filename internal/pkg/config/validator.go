package config

import (
	"fmt"
	"time"
)

// ValidateDuration validates that a duration is within a specified range.
// Both bounds are inclusive.
//
// Use cases:
//   - Poll interval validation (not too aggressive, not too slow)
//   - Per-request delay validation
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}

	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}

	return nil
}

// ValidateIntRange validates that an integer value is within a specified range.
// Both bounds are inclusive.
//
// Use cases:
//   - Cache capacity validation
//   - Port number validation (e.g., 1024-65535)
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}

	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}

	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}

	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration %v must be positive", duration)
	}
	return nil
}

// ValidatePort validates that a value is a usable non-privileged port.
func ValidatePort(port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("port %d outside valid range 1024-65535", port)
	}
	return nil
}
