package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Candidate filenames per config kind, in priority order. Priority alone
// breaks ties when several candidates exist; directory listing order never
// plays a part.
var (
	WranglerCandidates = []string{"wrangler.toml", "wrangler.json", "wrangler.jsonc"}
	DrizzleCandidates  = []string{"drizzle.config.ts", "drizzle.config.js", "drizzle.config.mjs"}
)

// Match is the result of locating one config kind.
type Match struct {
	// Path is the selected file: the first existing candidate in priority
	// order.
	Path string
	// All lists every existing candidate, again in priority order.
	All []string
}

// Ambiguous reports whether more than one candidate file exists. The run
// proceeds with Path either way; callers surface a warning.
func (m *Match) Ambiguous() bool {
	return len(m.All) > 1
}

// Locator finds configuration files in a project directory.
type Locator struct {
	fs afero.Fs
}

// NewLocator creates a Locator over the given filesystem.
func NewLocator(fs afero.Fs) *Locator {
	return &Locator{fs: fs}
}

// Locate returns the existing candidates for one config kind in dir. Zero
// matches is a NotFoundError naming every filename that was tried.
func (l *Locator) Locate(dir, kind string, candidates []string) (*Match, error) {
	var existing []string
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		ok, err := afero.Exists(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", path, err)
		}
		if ok {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil, &NotFoundError{Kind: kind, Dir: dir, Candidates: candidates}
	}
	return &Match{Path: existing[0], All: existing}, nil
}
