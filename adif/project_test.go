package adif

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func fieldNames(r *Record) []string {
	var names []string
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func TestProject_FifteenFields(t *testing.T) {
	body := "<station_callsign:5>N0CAL<call:4>W1AW<qso_date:8>20240315<time_on:4>1402" +
		"<time_off:4>1410<freq:6>14.074<band:3>20m<mode:3>FT8<submode:0><rst_sent:3>-10" +
		"<rst_rcvd:3>-12<operator:5>N0CAL<comment:5>hello<gridsquare:4>FN31<my_gridsquare:4>EM10"
	r := ParseRecord(body)
	if r.Len() != 15 {
		t.Fatalf("input has %d fields, want 15", r.Len())
	}

	p := Project(r, DefaultAllowList, SigPOTA, "US-0001")

	want := []string{"STATION_CALLSIGN", "CALL", "QSO_DATE", "TIME_ON", "FREQ", "BAND", "MODE", "SUBMODE", "OPERATOR", "MY_SIG", "MY_SIG_INFO"}
	if diff := cmp.Diff(want, fieldNames(p)); diff != "" {
		t.Errorf("projected fields mismatch (-want +got):\n%s", diff)
	}
	if p.Len() > 13 {
		t.Errorf("projected record has %d fields", p.Len())
	}
	if f, _ := p.Lookup("FREQ"); f.Length != 6 || f.Value != "14.074" {
		t.Errorf("FREQ = %+v", f)
	}
}

func TestProject_SyntheticFieldsOverwriteAndGoLast(t *testing.T) {
	r := ParseRecord("<MY_SIG:4>SOTA<call:4>W1AW<my_sig_info:9>W7W/LC-001<mode:2>CW")

	p := Project(r, DefaultAllowList, SigPOTA, "K-1234")

	if diff := cmp.Diff([]string{"CALL", "MODE", "MY_SIG", "MY_SIG_INFO"}, fieldNames(p)); diff != "" {
		t.Errorf("projected fields mismatch (-want +got):\n%s", diff)
	}
	if f, _ := p.Lookup(FieldMySig); f.Value != "POTA" || f.Length != 4 {
		t.Errorf("MY_SIG = %+v", f)
	}
	if f, _ := p.Lookup(FieldMySigInfo); f.Value != "K-1234" || f.Length != 6 {
		t.Errorf("MY_SIG_INFO = %+v", f)
	}
}

func TestProject_KeepsRawValueAndDeclaredLength(t *testing.T) {
	p := Project(ParseRecord("<call:3>W1AW <mode:2>cw"), DefaultAllowList, SigPOTA, "US-0001")
	f, _ := p.Lookup(FieldCall)
	if f.Value != "W1AW " || f.Length != 3 {
		t.Errorf("CALL = %+v, want raw value and declared length", f)
	}
	if f, _ := p.Lookup(FieldMode); f.Value != "cw" {
		t.Errorf("MODE = %+v, want value case untouched", f)
	}
}

func TestProject_RoundTrip(t *testing.T) {
	r := ParseRecord("<CALL:4>W1AW<QSO_DATE:8>20240315<TIME_ON:4>1402<BAND:3>20m<MODE:2>CW<NAME:4>John<QTH:6>Newton")
	sigInfo := "US-1234,US-5678"

	line := Project(r, DefaultAllowList, SigPOTA, sigInfo).Marshal("<eor>")
	back := ParseRecord(line)

	want := []Field{
		{Name: "CALL", Length: 4, Value: "W1AW "},
		{Name: "QSO_DATE", Length: 8, Value: "20240315 "},
		{Name: "TIME_ON", Length: 4, Value: "1402 "},
		{Name: "BAND", Length: 3, Value: "20m "},
		{Name: "MODE", Length: 2, Value: "CW "},
		{Name: "MY_SIG", Length: 4, Value: "POTA "},
		{Name: "MY_SIG_INFO", Length: len(sigInfo), Value: sigInfo + " "},
	}
	if diff := cmp.Diff(want, back.Fields()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	for _, f := range back.Fields() {
		if got := utf8.RuneCountInString(strings.TrimRight(f.Value, " ")); got != f.Length {
			t.Errorf("field %s declared %d, actual %d", f.Name, f.Length, got)
		}
	}
}

func TestRecord_Marshal(t *testing.T) {
	r := NewRecord()
	r.Set(Field{Name: "call", Length: 4, Value: "W1AW"})
	r.Set(Field{Name: "freq", Length: 6, Type: "N", Value: "14.074"})

	if got, want := r.Marshal("<EoR>"), "<CALL:4>W1AW <FREQ:6:N>14.074 <EoR>"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
	if got, want := NewRecord().Marshal("<eor>"), "<eor>"; got != want {
		t.Errorf("Marshal() of empty record = %q, want %q", got, want)
	}
}

func TestParseLog_Rewrite(t *testing.T) {
	text := "Generated by logger\n<ADIF_VER:5>3.1.4\n<PROGRAMID:6>Logger\n<eoh>\n" +
		"<call:4>W1AW<qso_date:8>20240315<time_on:4>1402<band:3>20m<mode:2>CW<rst_sent:3>599<EOR>\n" +
		"<call:4>K1AB<qso_date:8>20240316<time_on:4>0900<band:3>40m<mode:3>SSB<eor>\n" +
		"<call:4>N0XX<mode:2>CW"

	l, err := ParseLog(context.Background(), text)
	if err != nil {
		t.Fatalf("ParseLog() error = %v", err)
	}
	if len(l.Entries) != 2 {
		t.Fatalf("ParseLog() entries = %d, want 2 (unterminated record dropped)", len(l.Entries))
	}

	got := l.Project(DefaultAllowList, SigPOTA, "US-0001").String()
	want := "Generated by logger\n<ADIF_VER:5>3.1.4\n<PROGRAMID:6>Logger\n<EOH>\n" +
		"<CALL:4>W1AW <QSO_DATE:8>20240315 <TIME_ON:4>1402 <BAND:3>20m <MODE:2>CW <MY_SIG:4>POTA <MY_SIG_INFO:7>US-0001 <EOR>\n" +
		"<CALL:4>K1AB <QSO_DATE:8>20240316 <TIME_ON:4>0900 <BAND:3>40m <MODE:3>SSB <MY_SIG:4>POTA <MY_SIG_INFO:7>US-0001 <eor>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rewritten log mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLog_MissingHeader(t *testing.T) {
	_, err := ParseLog(context.Background(), "<call:4>W1AW<eor>")
	if !errors.Is(err, ErrFormat) {
		t.Errorf("ParseLog() error = %v, want ErrFormat", err)
	}
}

func TestParseLog_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseLog(ctx, "<eoh><call:4>W1AW<eor>")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParseLog() error = %v, want context.Canceled", err)
	}
}

func TestLog_EmptyRecords(t *testing.T) {
	l, err := ParseLog(context.Background(), "  header  <EOH>\n")
	if err != nil {
		t.Fatalf("ParseLog() error = %v", err)
	}
	if got, want := l.String(), "header\n<EOH>\n\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLog_ManyRecordsKeepOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<eoh>")
	for i := range 50 {
		call := "K" + strconv.Itoa(i)
		sb.WriteString("<call:" + strconv.Itoa(len(call)) + ">" + call + "<eor>")
	}
	l, err := ParseLog(context.Background(), sb.String())
	if err != nil {
		t.Fatalf("ParseLog() error = %v", err)
	}
	for i, e := range l.Entries {
		if got, want := e.Record.Get(FieldCall), "K"+strconv.Itoa(i); got != want {
			t.Fatalf("entry %d call = %q, want %q", i, got, want)
		}
	}
}
