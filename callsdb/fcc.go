// Package callsdb maintains small SQLite database mapping US amateur call
// signs to license holder state, built from FCC ULS amateur license dump
// (l_amat.zip).
package callsdb

import (
	"bufio"
	"io"
	"strings"
)

// Column positions in '|' delimited ULS records.
const (
	colSystemID = 1

	hdColStatus = 5
	// active license
	hdStatusActive = "A"

	enColCall  = 4
	enColState = 17
)

// Entry is a single call sign to state mapping.
type Entry struct {
	Call  string
	State string
}

// some ULS records carry long free text
const maxLineSize = 1024 * 1024

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

func splitRecord(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), "|")
}

// ActiveLicenses reads HD.dat (application/license header) records and
// returns set of unique system identifiers of active licenses.
func ActiveLicenses(r io.Reader) (map[string]struct{}, error) {
	active := make(map[string]struct{})
	scanner := newScanner(r)
	for scanner.Scan() {
		cols := splitRecord(scanner.Text())
		if len(cols) <= hdColStatus || cols[hdColStatus] != hdStatusActive {
			continue
		}
		active[cols[colSystemID]] = struct{}{}
	}
	return active, scanner.Err()
}

// Licensees reads EN.dat (entity) records and calls fn for every record which
// belongs to one of the active licenses. Records are reported in file order,
// fn error stops processing and is returned as is.
func Licensees(r io.Reader, active map[string]struct{}, fn func(Entry) error) error {
	scanner := newScanner(r)
	for scanner.Scan() {
		cols := splitRecord(scanner.Text())
		if len(cols) <= enColCall {
			continue
		}
		if _, ok := active[cols[colSystemID]]; !ok {
			continue
		}
		e := Entry{Call: cols[enColCall]}
		if len(cols) > enColState {
			e.State = cols[enColState]
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return scanner.Err()
}
