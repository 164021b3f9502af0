package callsdb

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"adifc/archive"
)

// Names of the ULS dump members.
const (
	FileHD = "HD.dat"
	FileEN = "EN.dat"
)

// ErrIncomplete means license dump lacks one of the required members.
var ErrIncomplete = errors.New("license dump is incomplete")

// Build reads license dump archive src and replaces call sign table in db
// with entries of active licenses. Returns number of stored rows.
func Build(ctx context.Context, src string, db *DB, log *zap.Logger) (int, error) {
	var active map[string]struct{}
	err := archive.Walk(src, archive.Base(FileHD), func(_ string, f *zip.File) error {
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		if active, err = ActiveLicenses(rc); err != nil {
			return fmt.Errorf("unable to read %s: %w", f.Name, err)
		}
		return archive.ErrStop
	})
	if err != nil {
		return 0, err
	}
	if active == nil {
		return 0, fmt.Errorf("%w: %s not found in %s", ErrIncomplete, FileHD, src)
	}
	log.Debug("Active licenses collected", zap.Int("count", len(active)))

	return db.Replace(ctx, func(add func(Entry) error) error {
		var seen bool
		err := archive.Walk(src, archive.Base(FileEN), func(_ string, f *zip.File) error {
			seen = true
			rc, err := f.Open()
			if err != nil {
				return err
			}
			defer rc.Close()

			if err := Licensees(rc, active, add); err != nil {
				return fmt.Errorf("unable to read %s: %w", f.Name, err)
			}
			return archive.ErrStop
		})
		if err == nil && !seen {
			err = fmt.Errorf("%w: %s not found in %s", ErrIncomplete, FileEN, src)
		}
		return err
	})
}
