package configdir

import (
	"fmt"
)

// ParseError reports that a discovered file could not be decoded by the
// configured driver. It carries the offending file path so callers can tell
// which file of a batch aborted the load.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("configdir: cannot parse %v: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError wraps a driver failure for one file.
func newParseError(file string, err error) *ParseError {
	return &ParseError{File: file, Err: err}
}

// wrapDiscovery and wrapRead keep the failing stage visible in error chains
// without introducing more exported error types.
func wrapDiscovery(dir string, err error) error {
	return fmt.Errorf("configdir: discover %v: %w", dir, err)
}

func wrapRead(file string, err error) error {
	return fmt.Errorf("configdir: read %v: %w", file, err)
}
