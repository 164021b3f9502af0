// Package adif implements the subset of Amateur Data Interchange Format
// (ADIF) needed to select QSOs for QSL labels and to rewrite logs for POTA
// uploads.
//
// Parsing is deliberately lenient: a field value is everything between the
// closing angle bracket of its tag and the next opening angle bracket, the
// declared length is recorded but never used for slicing.
package adif

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is a single ADIF data specifier: <NAME:LENGTH[:TYPE]>VALUE.
type Field struct {
	Name   string
	Length int
	// Type is optional data type indicator, empty when tag did not carry one.
	Type  string
	Value string
}

// String renders field back into data specifier form.
func (f Field) String() string {
	if len(f.Type) > 0 {
		return fmt.Sprintf("<%s:%d:%s>%s", f.Name, f.Length, f.Type, f.Value)
	}
	return fmt.Sprintf("<%s:%d>%s", f.Name, f.Length, f.Value)
}

// ScanFields extracts all data specifiers from the record body in order of
// appearance. Anything which does not look like "<name:length>" is skipped,
// including record and header markers.
func ScanFields(body string) []Field {
	var fields []Field
	for i := 0; i < len(body); {
		next := strings.IndexByte(body[i:], '<')
		if next < 0 {
			break
		}
		i += next

		f, n, ok := scanTag(body[i:])
		if !ok {
			// not a tag, resync on the next '<'
			i++
			continue
		}
		fields = append(fields, f)
		i += n
	}
	return fields
}

// scanTag parses a single data specifier at the start of s (s[0] is '<') and
// returns it together with the number of bytes consumed, value included.
func scanTag(s string) (Field, int, bool) {
	i := 1

	name, i := scanName(s, i)
	if len(name) == 0 || i >= len(s) || s[i] != ':' {
		return Field{}, 0, false
	}
	i++

	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start || i >= len(s) {
		return Field{}, 0, false
	}
	length, err := strconv.Atoi(s[start:i])
	if err != nil {
		// overflow
		return Field{}, 0, false
	}

	var typ string
	if s[i] == ':' {
		if typ, i = scanName(s, i+1); len(typ) == 0 || i >= len(s) {
			return Field{}, 0, false
		}
	}
	if s[i] != '>' {
		return Field{}, 0, false
	}
	i++

	end := strings.IndexByte(s[i:], '<')
	if end < 0 {
		end = len(s) - i
	}
	return Field{Name: name, Length: length, Type: typ, Value: s[i : i+end]}, i + end, true
}

// scanName returns run of characters starting at i which may form a tag name.
func scanName(s string, i int) (string, int) {
	start := i
	for i < len(s) && s[i] != ':' && s[i] != '<' && s[i] != '>' {
		i++
	}
	return s[start:i], i
}
