package migration

import "fmt"

// MissingDirError reports a migrations directory that does not exist, even
// after any generation step the user asked for.
type MissingDirError struct {
	Dir string
}

func (e *MissingDirError) Error() string {
	return fmt.Sprintf("migrations directory %s does not exist", e.Dir)
}
