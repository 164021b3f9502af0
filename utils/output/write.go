// Package output writes result files so that destination either receives
// complete content or stays untouched.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// ErrExists is returned when destination is present and overwriting was not
// requested.
var ErrExists = errors.New("output file already exists")

// Write creates temporary file next to name, fills it with fn and renames it
// into place. Nothing is left behind when fn or any file operation fails.
func Write(name string, overwrite bool, fn func(w io.Writer) error) (err error) {
	if err := Check(name, overwrite); err != nil {
		return err
	}

	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(f.Name()))
		}
	}()

	// temporary files are private, results are not
	if err = f.Chmod(0644); err != nil {
		return multierr.Append(fmt.Errorf("unable to set output file mode: %w", err), f.Close())
	}
	if err = fn(f); err != nil {
		return multierr.Append(err, f.Close())
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	if err = os.Rename(f.Name(), name); err != nil {
		return fmt.Errorf("unable to rename output file: %w", err)
	}
	return nil
}

// Check verifies that name could be written.
func Check(name string, overwrite bool) error {
	fi, err := os.Stat(name)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return err
	case fi.IsDir():
		return fmt.Errorf("output path is a directory: %s", name)
	case !overwrite:
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	return nil
}
