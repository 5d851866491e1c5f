package config

import "errors"

// Sentinel errors so callers can branch with errors.Is.
var (
	// ErrInvalidConfig indicates a loaded configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig indicates a configuration source could not be read.
	ErrLoadConfig = errors.New("load config failed")
)
