// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dirlock serialises batch operations on the same directory across
// processes with an advisory file lock. Lock files live in the OS temp dir,
// never inside the locked directory, so they cannot be selected for
// conversion or deletion.
package dirlock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/pdiddy/officekit/pkg/types"
)

const (
	// DefaultTimeout is how long Acquire waits for a held lock.
	DefaultTimeout = 2 * time.Second

	pollInterval = 50 * time.Millisecond
)

// Lock is a held directory lock.
type Lock struct {
	Dir   string
	flock *flock.Flock
}

// Path returns the lock file used for dir.
func Path(lockDir, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, "officekit-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Locker acquires directory locks with lock files under a base directory.
type Locker struct {
	lockDir string
	timeout time.Duration
}

// New returns a Locker keeping lock files in lockDir (os.TempDir when empty).
// A zero timeout means DefaultTimeout.
func New(lockDir string, timeout time.Duration) *Locker {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Locker{lockDir: lockDir, timeout: timeout}
}

// Acquire takes the exclusive lock for dir. If another process holds it
// past the timeout, the error wraps types.ErrDirectoryBusy.
func (l *Locker) Acquire(ctx context.Context, dir string) (*Lock, error) {
	path, err := Path(l.lockDir, dir)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s is locked by another officekit process", types.ErrDirectoryBusy, dir)
		}
		return nil, fmt.Errorf("acquiring lock for %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", types.ErrDirectoryBusy, dir)
	}
	return &Lock{Dir: dir, flock: fl}, nil
}

// With runs fn while holding the lock for dir.
func (l *Locker) With(ctx context.Context, dir string, fn func() error) error {
	lock, err := l.Acquire(ctx, dir)
	if err != nil {
		return err
	}
	defer lock.Release()
	return fn()
}

// Release unlocks. Releasing a nil Lock is a no-op.
func (lk *Lock) Release() error {
	if lk == nil || lk.flock == nil {
		return nil
	}
	return lk.flock.Unlock()
}
