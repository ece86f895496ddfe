package target

import (
	"fmt"
	"strings"
)

// NoDatabasesError reports a selectable scope with no database bindings.
type NoDatabasesError struct {
	// Environment is the scope that came up empty, "" for top level.
	Environment string
}

func (e *NoDatabasesError) Error() string {
	if e.Environment == "" {
		return "no databases configured in the deployment config"
	}
	return fmt.Sprintf("no databases configured for environment %q", e.Environment)
}

// UnknownEnvironmentError reports a requested environment the deployment
// config does not define.
type UnknownEnvironmentError struct {
	Name  string
	Known []string
}

func (e *UnknownEnvironmentError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("environment %q requested, but the config defines no environments", e.Name)
	}
	return fmt.Sprintf("unknown environment %q (defined: %s)", e.Name, strings.Join(e.Known, ", "))
}
