package sql

import (
	"errors"
	"fmt"
)

var (
	// ErrPlaceholderMismatch is returned by NewQuery when the template and the arguments disagree.
	ErrPlaceholderMismatch = errors.New("placeholder count does not match argument count")

	errUnsupportedDialect = errors.New("unsupported dialect")
	errColumnMissing      = errors.New("missing from result set")
	errColumnNull         = errors.New("unexpected NULL")
	errColumnAmbiguous    = errors.New("returned more than once")
	errIncompatibleType   = errors.New("incompatible type")
	errScalarColumns      = errors.New("scalar query must return exactly one column")
)

// ConfigError reports an unusable setting such as a malformed DSN or bind address. It is fatal at startup.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BackendError wraps any failure of the storage round trip.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// MappingError means a result row does not fit the expected shape, i.e. the query and the
// deployed schema have diverged.
type MappingError struct {
	Column string
	Err    error
}

func (e *MappingError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row mapping: %v", e.Err)
	}

	return fmt.Sprintf("row mapping: column %q: %v", e.Column, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }
