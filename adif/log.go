package adif

import (
	"context"
	"io"
	"strings"
)

// Entry is a terminated record with its original end marker.
type Entry struct {
	Record *Record
	Marker string
}

// Log is an ADIF document with mandatory header.
type Log struct {
	// Header is text before <EOH>, whitespace trimmed.
	Header  string
	Entries []Entry
}

// ParseLog splits text into header and records. Header is required, only
// records terminated by <EOR> are kept.
func ParseLog(ctx context.Context, text string) (*Log, error) {
	header, rest, err := SplitHeader(text)
	if err != nil {
		return nil, err
	}

	l := &Log{Header: strings.TrimSpace(header)}
	for _, c := range SplitRecords(rest) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(c.Marker) == 0 {
			continue
		}
		l.Entries = append(l.Entries, Entry{Record: ParseRecord(c.Body), Marker: c.Marker})
	}
	return l, nil
}

// Project returns new log with every record projected, see Project.
func (l *Log) Project(allow []string, sig, sigInfo string) *Log {
	out := &Log{Header: l.Header, Entries: make([]Entry, 0, len(l.Entries))}
	for _, e := range l.Entries {
		out.Entries = append(out.Entries, Entry{Record: Project(e.Record, allow, sig, sigInfo), Marker: e.Marker})
	}
	return out
}

// String renders log in ADI form: header, <EOH> on its own line, one record
// per line and trailing new line.
func (l *Log) String() string {
	var sb strings.Builder
	sb.WriteString(l.Header)
	sb.WriteString("\n<EOH>\n")
	for i, e := range l.Entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Record.Marshal(e.Marker))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// WriteTo implements io.WriterTo.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.String())
	return int64(n), err
}
