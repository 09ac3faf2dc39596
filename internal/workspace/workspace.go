// Package workspace manages the scratch directories that hold intermediate
// artifacts. Each task gets a fresh session directory under the configured
// workspace root, deleted again on release regardless of task outcome.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Workspace is one task's scratch area. The workspace root is guarded by a
// file lock so concurrent stitch invocations sharing a root do not trample
// each other's intermediates.
type Workspace struct {
	Root string

	lock *flock.Flock
}

// Acquire locks the workspace root and creates a fresh session directory
// inside it. It fails immediately when another process holds the lock.
func Acquire(baseDir string) (*Workspace, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	lock := flock.New(filepath.Join(baseDir, ".stitch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock workspace %s: %w", baseDir, err)
	}
	if !locked {
		return nil, fmt.Errorf("workspace %s is in use by another process", baseDir)
	}

	session := filepath.Join(baseDir, uuid.New().String())
	if err := os.MkdirAll(session, 0o755); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &Workspace{Root: session, lock: lock}, nil
}

// Dir returns a subdirectory of the session, creating it if needed.
func (w *Workspace) Dir(name string) (string, error) {
	dir := filepath.Join(w.Root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace directory %s: %w", name, err)
	}
	return dir, nil
}

// Release deletes the session directory and drops the lock. Safe to call
// exactly once on both success and failure paths.
func (w *Workspace) Release() error {
	removeErr := os.RemoveAll(w.Root)
	unlockErr := w.lock.Unlock()
	if removeErr != nil {
		return fmt.Errorf("remove session directory: %w", removeErr)
	}
	if unlockErr != nil {
		return fmt.Errorf("unlock workspace: %w", unlockErr)
	}
	return nil
}
