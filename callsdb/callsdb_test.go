package callsdb

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func record(cols map[int]string, width int) string {
	parts := make([]string, width)
	for i, v := range cols {
		parts[i] = v
	}
	return strings.Join(parts, "|")
}

func hdLine(id, call, status string) string {
	return record(map[int]string{0: "HD", 1: id, 4: call, 5: status}, 50)
}

func enLine(id, call, state string) string {
	return record(map[int]string{0: "EN", 1: id, 4: call, 7: "Doe, John", 16: "Hartford", 17: state}, 30)
}

var (
	hdData = strings.Join([]string{
		hdLine("100", "W1AW", "A"),
		hdLine("101", "K1OLD", "E"),
		hdLine("102", "N0CALL", "A"),
		hdLine("100", "W1AW", "A"),
		"HD|short",
	}, "\r\n") + "\r\n"
	enData = strings.Join([]string{
		enLine("100", "W1AW", "CT"),
		enLine("101", "K1OLD", "MA"),
		enLine("102", "N0CALL", "MN"),
		enLine("999", "W9ZZZ", "IL"),
		"EN|102|||N0CALL",
	}, "\r\n") + "\r\n"
)

func makeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "l_amat.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for n, data := range files {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return name
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "USState.db"), "USState")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestActiveLicenses(t *testing.T) {
	active, err := ActiveLicenses(strings.NewReader(hdData))
	if err != nil {
		t.Fatalf("ActiveLicenses() error = %v", err)
	}
	want := map[string]struct{}{"100": {}, "102": {}}
	if diff := cmp.Diff(want, active); diff != "" {
		t.Errorf("active mismatch (-want +got):\n%s", diff)
	}
}

func TestLicensees(t *testing.T) {
	var got []Entry
	err := Licensees(strings.NewReader(enData), map[string]struct{}{"100": {}, "102": {}}, func(e Entry) error {
		got = append(got, e)
		return nil
	})
	if err != nil {
		t.Fatalf("Licensees() error = %v", err)
	}
	want := []Entry{{"W1AW", "CT"}, {"N0CALL", "MN"}, {"N0CALL", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	if err := Licensees(strings.NewReader(enData), map[string]struct{}{"100": {}}, func(Entry) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("Licensees() error = %v, want callback error", err)
	}
}

func TestBuild(t *testing.T) {
	src := makeZip(t, map[string]string{"HD.dat": hdData, "EN.dat": enData, "counts": "ignored"})
	db := openTestDB(t)

	n, err := Build(context.Background(), src, db, testLogger(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Build() rows = %d, want 3", n)
	}

	tests := []struct {
		call  string
		state string
		err   error
	}{
		{"W1AW", "CT", nil},
		{"w1aw ", "CT", nil},
		{"N0CALL", "MN", nil},
		{"K1OLD", "", ErrNotFound},
		{"W9ZZZ", "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			got, err := db.Lookup(tt.call)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Lookup() error = %v, want %v", err, tt.err)
			}
			if got != tt.state {
				t.Errorf("Lookup() = %q, want %q", got, tt.state)
			}
		})
	}

	t.Run("rebuild replaces table", func(t *testing.T) {
		again := makeZip(t, map[string]string{
			"HD.dat": hdLine("200", "KD2XYZ", "A"),
			"EN.dat": enLine("200", "KD2XYZ", "NY"),
		})
		if _, err := Build(context.Background(), again, db, testLogger(t)); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if n, err := db.Count(); err != nil || n != 1 {
			t.Errorf("Count() = %d, %v, want 1", n, err)
		}
		if _, err := db.Lookup("W1AW"); !errors.Is(err, ErrNotFound) {
			t.Errorf("old rows must be gone, got %v", err)
		}
	})
}

func TestBuild_Incomplete(t *testing.T) {
	db := openTestDB(t)
	if _, err := Build(context.Background(), makeZip(t, map[string]string{"HD.dat": hdData, "EN.dat": enData}), db, testLogger(t)); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for name, files := range map[string]map[string]string{
		"no HD": {"EN.dat": enData},
		"no EN": {"HD.dat": hdData},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Build(context.Background(), makeZip(t, files), db, testLogger(t))
			if !errors.Is(err, ErrIncomplete) {
				t.Fatalf("Build() error = %v, want ErrIncomplete", err)
			}
			if n, err := db.Count(); err != nil || n != 3 {
				t.Errorf("previous table must survive, Count() = %d, %v", n, err)
			}
		})
	}
}

func TestBuild_NotArchive(t *testing.T) {
	src := filepath.Join(t.TempDir(), "HD.dat")
	if err := os.WriteFile(src, []byte(hdData), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Build(context.Background(), src, openTestDB(t), testLogger(t)); err == nil {
		t.Error("Expected error for plain file")
	}
}

func TestFetch(t *testing.T) {
	payload := "PK fake archive"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/l_amat.zip" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "adifc/") {
			t.Errorf("User-Agent = %q", ua)
		}
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	name, err := Fetch(context.Background(), srv.Client(), srv.URL+"/l_amat.zip", dir, testLogger(t))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if filepath.Dir(name) != dir {
		t.Errorf("Fetch() file %s is not in %s", name, dir)
	}
	if data, _ := os.ReadFile(name); string(data) != payload {
		t.Errorf("downloaded %q", data)
	}

	t.Run("not found", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.zip", dir, testLogger(t)); err == nil {
			t.Fatal("Expected error for 404")
		}
		if entries, _ := os.ReadDir(dir); len(entries) != 0 {
			t.Errorf("nothing must be left behind, got %d file(s)", len(entries))
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Fetch(ctx, srv.Client(), srv.URL+"/l_amat.zip", t.TempDir(), testLogger(t)); !errors.Is(err, context.Canceled) {
			t.Errorf("Fetch() error = %v, want context.Canceled", err)
		}
	})
}

func TestIsURL(t *testing.T) {
	for src, want := range map[string]bool{
		"https://data.fcc.gov/download/pub/uls/complete/l_amat.zip": true,
		"HTTP://example.com/x.zip": true,
		"l_amat.zip":               false,
		"/tmp/http/l_amat.zip":     false,
	} {
		if got := IsURL(src); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", src, got, want)
		}
	}
}
