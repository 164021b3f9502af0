package adif

import "strings"

// SigPOTA is special activity program name written into MY_SIG.
const SigPOTA = "POTA"

// DefaultAllowList is set of fields POTA log upload needs.
var DefaultAllowList = []string{
	FieldCall, FieldQSODate, FieldTimeOn, FieldFreq, FieldBand, FieldMode, FieldSubmode,
	FieldStationCallsign, FieldOperator, FieldMySig, FieldMySigInfo,
}

// Project returns new record which keeps only allowed fields (raw values and
// declared lengths, first-seen order) followed by MY_SIG and MY_SIG_INFO set
// to sig and sigInfo. Synthetic fields always replace whatever source had and
// always come last.
func Project(r *Record, allow []string, sig, sigInfo string) *Record {
	keep := make(map[string]bool, len(allow))
	for _, name := range allow {
		keep[strings.ToUpper(name)] = true
	}
	keep[FieldMySig], keep[FieldMySigInfo] = false, false

	out := NewRecord()
	for _, f := range r.fields {
		if keep[f.Name] {
			out.Set(f)
		}
	}
	out.SetValue(FieldMySig, sig)
	out.SetValue(FieldMySigInfo, sigInfo)
	return out
}

// Marshal renders record as space separated data specifiers followed by end
// of record marker.
func (r *Record) Marshal(marker string) string {
	var sb strings.Builder
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.String())
	}
	if len(marker) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(marker)
	}
	return sb.String()
}
