package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// WriteFileAtomic writes data next to name and renames it into place, so readers
// (including file watchers) never observe a partially written file.
func WriteFileAtomic(name string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %q", name)
	}
	committed := false
	defer func() {
		if !committed {
			err = multierr.Combine(err, tmp.Close(), os.Remove(tmp.Name()))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrapf(err, "writing %q", tmp.Name())
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %q", tmp.Name())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrapf(err, "chmod %q", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		//nolint:errcheck
		os.Remove(tmp.Name())
		committed = true
		return errors.Wrapf(err, "renaming into %q", name)
	}
	committed = true
	return nil
}
