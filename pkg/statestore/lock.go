package statestore

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/gofrs/flock"
)

// Lock is a held advisory lock on the state snapshot.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the lock file at path without blocking. A lock held by
// another process is an IO_FAILURE.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot create lock directory for %s", path)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot lock %s", path)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrIoFailure, "another run in progress (lock %s is held)", path).
			WithDetail("path", path)
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return errors.Wrapf(err, errors.ErrIoFailure, "cannot unlock %s", l.fl.Path())
	}
	return nil
}
