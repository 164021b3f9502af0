package adif

import (
	"strings"
	"unicode/utf8"
)

// Names of the fields this package cares about.
const (
	FieldCall            = "CALL"
	FieldQSODate         = "QSO_DATE"
	FieldTimeOn          = "TIME_ON"
	FieldFreq            = "FREQ"
	FieldBand            = "BAND"
	FieldBandRX          = "BAND_RX"
	FieldMode            = "MODE"
	FieldSubmode         = "SUBMODE"
	FieldStationCallsign = "STATION_CALLSIGN"
	FieldOperator        = "OPERATOR"
	FieldRSTSent         = "RST_SENT"
	FieldDXCC            = "DXCC"
	FieldQSLVia          = "QSL_VIA"
	FieldQSLSent         = "QSL_SENT"
	FieldQSLRcvd         = "QSL_RCVD"
	FieldMySig           = "MY_SIG"
	FieldMySigInfo       = "MY_SIG_INFO"
)

// Record is a single QSO. Fields are keyed by upper-cased name and kept in
// order of their first appearance. When the same tag is seen more than once
// the last value wins but the field keeps its original position.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// ParseRecord builds record from a raw record body.
func ParseRecord(body string) *Record {
	r := NewRecord()
	for _, f := range ScanFields(body) {
		r.Set(f)
	}
	return r
}

// Set stores field under its upper-cased name, replacing any previous value.
func (r *Record) Set(f Field) {
	f.Name = strings.ToUpper(f.Name)
	if i, ok := r.index[f.Name]; ok {
		r.fields[i] = f
		return
	}
	r.index[f.Name] = len(r.fields)
	r.fields = append(r.fields, f)
}

// SetValue stores generated field, its length is always computed from value.
func (r *Record) SetValue(name, value string) {
	r.Set(Field{Name: name, Length: utf8.RuneCountInString(value), Value: value})
}

// Lookup returns field by case-insensitive name.
func (r *Record) Lookup(name string) (Field, bool) {
	if i, ok := r.index[strings.ToUpper(name)]; ok {
		return r.fields[i], true
	}
	return Field{}, false
}

// Get returns raw value of the field or empty string when it is absent.
func (r *Record) Get(name string) string {
	f, _ := r.Lookup(name)
	return f.Value
}

// Has reports whether record carries field.
func (r *Record) Has(name string) bool {
	_, ok := r.index[strings.ToUpper(name)]
	return ok
}

// Fields returns copy of record fields in order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns number of distinct fields.
func (r *Record) Len() int {
	return len(r.fields)
}
