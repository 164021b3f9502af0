package labels

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"adifc/adif"
	"adifc/layout"
)

// Values is a struct that holds variables we make available for label
// template expansion.
type Values struct {
	// Index is 1-based position of the label in the batch.
	Index   int
	Call    string
	Date    string
	Time    string
	Band    string
	Mode    string
	RSTSent string
	DXCC    string
	QSLVia  string
}

// Builder turns QSO into label lines.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder parses label template. Every line of template output becomes
// single label line, trailing new lines are ignored.
func NewBuilder(text string) (*Builder, error) {
	tmpl, err := template.New("label").Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse label template: %w", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Build expands template for QSO with given 0-based index.
func (b *Builder) Build(index int, q adif.QSO) (layout.Label, error) {
	values := Values{
		Index:   index + 1,
		Call:    q.Call,
		Date:    q.Date,
		Time:    q.Time,
		Band:    q.Band,
		Mode:    q.Mode,
		RSTSent: q.RSTSent,
		DXCC:    q.DXCC,
		QSLVia:  q.QSLVia,
	}

	buf := new(bytes.Buffer)
	if err := b.tmpl.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to expand label template: %w", err)
	}
	out := strings.TrimRight(buf.String(), "\r\n")
	if len(out) == 0 {
		return layout.Label{}, nil
	}
	return layout.Label(strings.Split(out, "\n")), nil
}
