package adif

import (
	"strings"
	"unicode/utf8"
)

// QSO is display and filter view of a record. All values are trimmed and
// have defaults applied where the defaulting table defines them.
type QSO struct {
	Call    string
	Date    string
	Time    string
	Band    string
	Mode    string
	RSTSent string

	DXCC    string
	QSLVia  string
	QSLSent string
	QSLRcvd string
}

// Normalization describes how single field is prepared for display: Format
// (when not nil) is applied to trimmed raw value, Fallback replaces empty
// result.
type Normalization struct {
	Format   func(string) string
	Fallback string
}

// Normalizations is the defaulting table. Fields not listed here are used
// trimmed, absence yields empty string.
var Normalizations = map[string]Normalization{
	FieldCall:    {Format: strings.ToUpper, Fallback: "UNKNOWN"},
	FieldMode:    {Format: strings.ToUpper, Fallback: "UNKNOWN"},
	FieldQSODate: {Format: FormatDate, Fallback: "0000-00-00"},
	FieldTimeOn:  {Format: FormatTime, Fallback: "00:00"},
	FieldBandRX:  {Fallback: "UNKNOWN"},
	FieldRSTSent: {Fallback: "N/A"},
}

// Value returns normalized value of the named field.
func Value(r *Record, name string) string {
	v := strings.TrimSpace(r.Get(name))
	n, ok := Normalizations[strings.ToUpper(name)]
	if !ok {
		return v
	}
	if n.Format != nil {
		v = n.Format(v)
	}
	if len(v) == 0 {
		v = n.Fallback
	}
	return v
}

// NewQSO prepares display and filter view of the record.
func NewQSO(r *Record) QSO {
	return QSO{
		Call:    Value(r, FieldCall),
		Date:    Value(r, FieldQSODate),
		Time:    Value(r, FieldTimeOn),
		Band:    Value(r, FieldBandRX),
		Mode:    Value(r, FieldMode),
		RSTSent: Value(r, FieldRSTSent),
		DXCC:    Value(r, FieldDXCC),
		QSLVia:  Value(r, FieldQSLVia),
		QSLSent: Value(r, FieldQSLSent),
		QSLRcvd: Value(r, FieldQSLRcvd),
	}
}

// FormatDate turns YYYYMMDD into YYYY-MM-DD, anything not exactly 8
// characters long is returned unchanged.
func FormatDate(s string) string {
	if utf8.RuneCountInString(s) != 8 {
		return s
	}
	r := []rune(s)
	return string(r[:4]) + "-" + string(r[4:6]) + "-" + string(r[6:])
}

// FormatTime turns HHMM into HH:MM, anything not exactly 4 characters long is
// returned unchanged.
func FormatTime(s string) string {
	if utf8.RuneCountInString(s) != 4 {
		return s
	}
	r := []rune(s)
	return string(r[:2]) + ":" + string(r[2:])
}
