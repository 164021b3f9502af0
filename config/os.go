package config

import (
	"path/filepath"
	"strings"
)

// SafeFileName replaces characters which may not be used in file names on
// this platform in the last element of name with '_'. Directory part is kept
// as is. Name which becomes empty (or consists of dots only) is replaced with
// "_bad_file_name_".
func SafeFileName(name string) string {
	dir, base := filepath.Split(name)
	base = strings.Map(func(sym rune) rune {
		if sym < ' ' || isReservedRune(sym) {
			return '_'
		}
		return sym
	}, base)
	base = strings.TrimRight(base, " ")
	if len(strings.Trim(base, ".")) == 0 || isReservedName(base) {
		base = "_bad_file_name_"
	}
	return dir + base
}
