package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Dir is a process-local scratch area for transient downloads. Each
// operation works inside its own Session subdirectory so concurrent
// requests never collide and cleanup is a single directory removal.
type Dir struct {
	root string
}

func New(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string {
	return d.root
}

// Session is a uniquely-named subdirectory scoped to one operation.
// Close removes it and everything inside, on every exit path when
// deferred at the call site.
type Session struct {
	path string
}

func (d *Dir) NewSession(prefix string) (*Session, error) {
	path := filepath.Join(d.root, prefix+"-"+uuid.NewString())
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch session %s: %w", path, err)
	}
	return &Session{path: path}, nil
}

func (s *Session) Path() string {
	return s.path
}

// Join returns a path for name inside the session directory.
func (s *Session) Join(name string) string {
	return filepath.Join(s.path, name)
}

func (s *Session) Close() error {
	return os.RemoveAll(s.path)
}

// Sweep removes session directories and stray files older than maxAge.
// Returns the number of entries removed. Used by the janitor to reclaim
// space after crashes or kills that skipped deferred cleanup.
func (d *Dir) Sweep(maxAge time.Duration) (int, error) {
	dirEntries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read scratch directory %s: %w", d.root, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(d.root, de.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
