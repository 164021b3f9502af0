// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrStop may be returned by WalkFunc to end the walk early without error.
var ErrStop = errors.New("stop walking")

// Matcher decides if archive entry should be visited.
type Matcher func(name string) bool

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to Walk
// The file argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive which satisfy match condition (nil
// matches everything), calling walkFn for each item. Archives with entries
// carrying path traversal components ("..") or absolute paths are rejected.
func Walk(archive string, match Matcher, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Under matches entries located in the directory prefix, or the entry
// itself when prefix names a file. Empty prefix matches everything.
func Under(prefix string) Matcher {
	prefix = strings.Trim(path.Clean("/"+prefix), "/")
	return func(name string) bool {
		if len(prefix) == 0 || name == prefix {
			return true
		}
		return strings.HasPrefix(name, prefix+"/")
	}
}

// WithExt matches entries by case insensitive extension.
func WithExt(exts ...string) Matcher {
	return func(name string) bool {
		ext := path.Ext(name)
		for _, e := range exts {
			if strings.EqualFold(ext, e) {
				return true
			}
		}
		return false
	}
}

// Base matches entries by case insensitive base name, wherever they are
// located in the archive.
func Base(names ...string) Matcher {
	return func(name string) bool {
		base := path.Base(name)
		for _, n := range names {
			if strings.EqualFold(base, n) {
				return true
			}
		}
		return false
	}
}

// All combines matchers, entry is visited when every one of them agrees.
func All(ms ...Matcher) Matcher {
	return func(name string) bool {
		for _, m := range ms {
			if !m(name) {
				return false
			}
		}
		return true
	}
}

// ReadFile reads complete content of the archive entry.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
