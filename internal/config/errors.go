package config

import "errors"

// Error kinds returned by Validate and Load.
var (
	ErrInvalidConfig = errors.New("invalid engine config")
	ErrLoadConfig    = errors.New("load engine config")
)
