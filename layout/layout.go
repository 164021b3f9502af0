// Package layout maps an ordered sequence of labels onto pages of a fixed
// label grid. All measurements are in PostScript points with the origin in the
// top-left corner of a page.
package layout

import (
	"context"
	"errors"
	"fmt"
)

// Inch is number of points in an inch.
const Inch = 72.0

// ErrNoLabels is returned when there is nothing to place.
var ErrNoLabels = errors.New("no labels to render")

// Geometry describes label sheet. It is a value type and never changes once
// built.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	Columns int
	Rows    int

	LabelWidth  float64
	LabelHeight float64
	LeftMargin  float64
	TopMargin   float64

	// TextLeftPadding is distance from label left edge to text.
	TextLeftPadding float64
	// TextTopPadding is distance from label top edge to the baseline of the
	// first line.
	TextTopPadding float64
	LineHeight     float64
	FontSize       float64
}

// Avery5160 is 3x10 address label sheet on US Letter paper.
func Avery5160() Geometry {
	return Geometry{
		PageWidth:       8.5 * Inch,
		PageHeight:      11 * Inch,
		Columns:         3,
		Rows:            10,
		LabelWidth:      2.625 * Inch,
		LabelHeight:     1.0 * Inch,
		LeftMargin:      0.1875 * Inch,
		TopMargin:       0.5 * Inch,
		TextLeftPadding: 0.2 * Inch,
		TextTopPadding:  0.2 * Inch,
		LineHeight:      14,
		FontSize:        10,
	}
}

// Validate checks that geometry is usable and the grid fits on the page.
func (g Geometry) Validate() error {
	switch {
	case g.Columns <= 0 || g.Rows <= 0:
		return fmt.Errorf("grid must have positive number of rows and columns, got %dx%d", g.Columns, g.Rows)
	case g.PageWidth <= 0 || g.PageHeight <= 0 || g.LabelWidth <= 0 || g.LabelHeight <= 0:
		return errors.New("page and label sizes must be positive")
	case g.LeftMargin < 0 || g.TopMargin < 0:
		return errors.New("margins may not be negative")
	case g.LineHeight <= 0 || g.FontSize <= 0:
		return errors.New("line height and font size must be positive")
	}
	const slack = 0.01
	if w := g.LeftMargin + float64(g.Columns)*g.LabelWidth; w > g.PageWidth+slack {
		return fmt.Errorf("grid width %.2fpt exceeds page width %.2fpt", w, g.PageWidth)
	}
	if h := g.TopMargin + float64(g.Rows)*g.LabelHeight; h > g.PageHeight+slack {
		return fmt.Errorf("grid height %.2fpt exceeds page height %.2fpt", h, g.PageHeight)
	}
	return nil
}

// PerPage returns number of labels on a single page.
func (g Geometry) PerPage() int {
	return g.Columns * g.Rows
}

// Slot is a position on the grid, all values 0-based.
type Slot struct {
	Page int
	Row  int
	Col  int
}

// Slot maps global label index to its grid position. Labels fill rows left to
// right, rows top to bottom, and a new page starts when index is a positive
// multiple of PerPage.
func (g Geometry) Slot(i int) Slot {
	return Slot{
		Page: i / g.PerPage(),
		Row:  (i / g.Columns) % g.Rows,
		Col:  i % g.Columns,
	}
}

// Line is a single text line placed on a page, Y is the baseline.
type Line struct {
	X, Y float64
	Text string
}

// Placement is a label with resolved coordinates.
type Placement struct {
	Index int
	Slot  Slot
	// X, Y is label top-left corner.
	X, Y  float64
	Lines []Line
}

// Label is ordered set of display lines.
type Label []string

// Place resolves label coordinates.
func (g Geometry) Place(i int, label Label) Placement {
	s := g.Slot(i)
	p := Placement{
		Index: i,
		Slot:  s,
		X:     g.LeftMargin + float64(s.Col)*g.LabelWidth,
		Y:     g.TopMargin + float64(s.Row)*g.LabelHeight,
		Lines: make([]Line, 0, len(label)),
	}
	for n, text := range label {
		p.Lines = append(p.Lines, Line{
			X:    p.X + g.TextLeftPadding,
			Y:    p.Y + g.TextTopPadding + float64(n)*g.LineHeight,
			Text: text,
		})
	}
	return p
}

// Canvas receives placed labels. AddPage is always called before the first
// label of every page.
type Canvas interface {
	AddPage() error
	Draw(p Placement) error
}

// Render places labels in order onto canvas and returns number of pages
// produced.
func Render(ctx context.Context, g Geometry, labels []Label, c Canvas) (int, error) {
	if len(labels) == 0 {
		return 0, ErrNoLabels
	}
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("bad label geometry: %w", err)
	}

	pages := 0
	for i, label := range labels {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		if i%g.PerPage() == 0 {
			if err := c.AddPage(); err != nil {
				return pages, fmt.Errorf("unable to start page %d: %w", pages+1, err)
			}
			pages++
		}
		if err := c.Draw(g.Place(i, label)); err != nil {
			return pages, fmt.Errorf("unable to draw label %d: %w", i, err)
		}
	}
	return pages, nil
}
