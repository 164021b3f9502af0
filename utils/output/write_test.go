package output

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "sub", "out.adi")

	if err := Write(name, false, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if data, _ := os.ReadFile(name); string(data) != "first" {
		t.Errorf("content = %q, want first", data)
	}

	t.Run("exists without overwrite", func(t *testing.T) {
		err := Write(name, false, func(io.Writer) error { return nil })
		if !errors.Is(err, ErrExists) {
			t.Errorf("Write() error = %v, want ErrExists", err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := Write(name, true, func(w io.Writer) error {
			_, err := io.WriteString(w, "second")
			return err
		}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if data, _ := os.ReadFile(name); string(data) != "second" {
			t.Errorf("content = %q, want second", data)
		}
	})

	t.Run("failure keeps destination and leaves no temporary files", func(t *testing.T) {
		boom := errors.New("boom")
		err := Write(name, true, func(w io.Writer) error {
			io.WriteString(w, "partial")
			return boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("Write() error = %v, want boom", err)
		}
		if data, _ := os.ReadFile(name); string(data) != "second" {
			t.Errorf("content = %q, want second", data)
		}
		entries, _ := os.ReadDir(filepath.Dir(name))
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("failure creates nothing", func(t *testing.T) {
		fresh := filepath.Join(dir, "fresh.adi")
		_ = Write(fresh, false, func(io.Writer) error { return errors.New("boom") })
		if _, err := os.Stat(fresh); !os.IsNotExist(err) {
			t.Errorf("expected %s to be absent, got %v", fresh, err)
		}
	})
}

func TestCheck_Directory(t *testing.T) {
	if err := Check(t.TempDir(), true); err == nil {
		t.Error("Expected error for directory destination")
	}
}

func TestWrite_Mode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	name := filepath.Join(t.TempDir(), "qsl_labels.pdf")
	if err := Write(name, false, func(w io.Writer) error {
		_, err := io.WriteString(w, "data")
		return err
	}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if got := fi.Mode().Perm(); got != 0644 {
		t.Errorf("mode = %o, want 644", got)
	}
}
