package utils

import "strconv"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseInt converts string to int with default value. Negative values fall back
// to the default.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 0 {
		return defaultValue
	}

	return result
}

// ClampLimit keeps a page size inside [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
