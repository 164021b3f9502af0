package adif

import (
	"io"
	"strings"

	"github.com/beevik/etree"
)

// WriteADX writes log as ADIF XML. Free text found in the ADI header goes
// into a comment, header fields become HEADER children. Values are trimmed
// since whitespace between ADI tags has no meaning in XML form.
func (l *Log) WriteADX(w io.Writer) (int64, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ADX")
	header := root.CreateElement("HEADER")
	if preamble := headerPreamble(l.Header); len(preamble) > 0 {
		header.CreateComment(" " + strings.ReplaceAll(preamble, "--", "- -") + " ")
	}
	for _, f := range ScanFields(l.Header) {
		if !isXMLName(f.Name) {
			continue
		}
		header.CreateElement(strings.ToUpper(f.Name)).SetText(strings.TrimSpace(f.Value))
	}

	records := root.CreateElement("RECORDS")
	for _, e := range l.Entries {
		rec := records.CreateElement("RECORD")
		for _, f := range e.Record.fields {
			if !isXMLName(f.Name) {
				continue
			}
			rec.CreateElement(f.Name).SetText(strings.TrimSpace(f.Value))
		}
	}

	doc.Indent(2)
	return doc.WriteTo(w)
}

// headerPreamble returns header text preceding the first tag.
func headerPreamble(header string) string {
	if i := strings.IndexByte(header, '<'); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}

// isXMLName is conservative check that field name may be used as element name.
func isXMLName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
