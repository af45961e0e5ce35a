package gallery

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("gallery: invalid configuration")

// ConfigError names the configuration field that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gallery: invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ProviderError reports an item provider failure during a fill pass. The
// pass that hit it was rolled back.
type ProviderError struct {
	Op    string // "measure" or "materialize"
	Index int
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gallery: %s item %d: %v", e.Op, e.Index, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
