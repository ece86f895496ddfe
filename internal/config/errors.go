package config

import (
	"fmt"
	"strings"
)

// ParseError reports a configuration file that could not be read, decoded, or
// projected into its typed view.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError reports a configuration file whose extension maps to
// no registered loader.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q for %s", e.Ext, e.Path)
}

// NotFoundError reports that none of the candidate filenames for a config
// kind exist in the searched directory.
type NotFoundError struct {
	Kind       string
	Dir        string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s config found in %s (looked for %s)",
		e.Kind, e.Dir, strings.Join(e.Candidates, ", "))
}
