package labels

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"adifc/layout"
	"adifc/misc"
	"adifc/utils/images"
)

// Document describes label sheet being produced.
type Document struct {
	Title   string
	Subject string
	Font    string
}

// Part is a single output file of the sheet.
type Part struct {
	// Suffix is appended to the output base name, includes extension.
	Suffix string
	Write  func(w io.Writer) error
}

// sheet is canvas which knows how to store itself.
type sheet interface {
	layout.Canvas
	Parts() ([]Part, error)
}

// pdfSheet draws labels with core PDF fonts.
type pdfSheet struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	font string
	size float64
}

func newPDFSheet(g layout.Geometry, doc Document) *pdfSheet {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Subject, true)
	pdf.SetCreator(misc.GetAppName()+" "+misc.GetVersion(), true)

	return &pdfSheet{
		pdf: pdf,
		// core fonts are cp1252
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		font: doc.Font,
		size: g.FontSize,
	}
}

func (s *pdfSheet) AddPage() error {
	s.pdf.AddPage()
	s.pdf.SetFont(s.font, "", s.size)
	return s.pdf.Error()
}

func (s *pdfSheet) Draw(p layout.Placement) error {
	for _, l := range p.Lines {
		s.pdf.Text(l.X, l.Y, s.tr(l.Text))
	}
	return s.pdf.Error()
}

func (s *pdfSheet) Parts() ([]Part, error) {
	return []Part{{Suffix: ".pdf", Write: s.pdf.Output}}, nil
}

// xlsxSheet puts every page on its own worksheet, one label per cell.
type xlsxSheet struct {
	f     *excelize.File
	g     layout.Geometry
	style int
	page  string
	pages int
}

func newXLSXSheet(g layout.Geometry, doc Document) (*xlsxSheet, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top", Indent: 1},
		Font:      &excelize.Font{Family: doc.Font, Size: g.FontSize},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create cell style: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.Title,
		Subject: doc.Subject,
		Creator: misc.GetAppName(),
	}); err != nil {
		return nil, fmt.Errorf("unable to set document properties: %w", err)
	}
	return &xlsxSheet{f: f, g: g, style: style}, nil
}

// column width is measured in characters of default font, roughly 7 pixels
// at 96 DPI.
func pointsToWidth(pt float64) float64 {
	return math.Round(pt*96/72/7*100) / 100
}

func (s *xlsxSheet) AddPage() error {
	s.pages++
	name := fmt.Sprintf("Page %d", s.pages)
	if s.pages == 1 {
		if err := s.f.SetSheetName(s.f.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := s.f.NewSheet(name); err != nil {
		return err
	}
	s.page = name

	last, err := excelize.ColumnNumberToName(s.g.Columns)
	if err != nil {
		return err
	}
	if err := s.f.SetColWidth(name, "A", last, pointsToWidth(s.g.LabelWidth)); err != nil {
		return err
	}
	for row := 1; row <= s.g.Rows; row++ {
		if err := s.f.SetRowHeight(name, row, s.g.LabelHeight); err != nil {
			return err
		}
	}
	return nil
}

func (s *xlsxSheet) Draw(p layout.Placement) error {
	cell, err := excelize.CoordinatesToCellName(p.Slot.Col+1, p.Slot.Row+1)
	if err != nil {
		return err
	}
	text := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		text = append(text, l.Text)
	}
	if err := s.f.SetCellValue(s.page, cell, strings.Join(text, "\n")); err != nil {
		return err
	}
	return s.f.SetCellStyle(s.page, cell, cell, s.style)
}

func (s *xlsxSheet) Parts() ([]Part, error) {
	return []Part{{
		Suffix: ".xlsx",
		Write: func(w io.Writer) error {
			if err := s.f.Write(w); err != nil {
				return err
			}
			return s.f.Close()
		},
	}}, nil
}

// pngSheet renders preview images, one file per page. Bitmap font has fixed
// size, configured font is ignored.
type pngSheet struct {
	g     layout.Geometry
	scale float64
	title string
	pages []*image.NRGBA
}

func newPNGSheet(g layout.Geometry, doc Document, dpi int) *pngSheet {
	return &pngSheet{g: g, scale: float64(dpi) / layout.Inch, title: doc.Title}
}

func (s *pngSheet) px(pt float64) int {
	return int(math.Round(pt * s.scale))
}

func (s *pngSheet) AddPage() error {
	s.pages = append(s.pages, imaging.New(s.px(s.g.PageWidth), s.px(s.g.PageHeight), color.White))
	return nil
}

func (s *pngSheet) Draw(p layout.Placement) error {
	if len(s.pages) == 0 {
		return fmt.Errorf("no page to draw label %d on", p.Index)
	}
	d := &font.Drawer{
		Dst:  s.pages[len(s.pages)-1],
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	for _, l := range p.Lines {
		d.Dot = fixed.P(s.px(l.X), s.px(l.Y))
		d.DrawString(l.Text)
	}
	return nil
}

func (s *pngSheet) Parts() ([]Part, error) {
	parts := make([]Part, 0, len(s.pages))
	for i, page := range s.pages {
		suffix := ".png"
		if len(s.pages) > 1 {
			suffix = "-" + slug.Make(fmt.Sprintf("page %d", i+1)) + suffix
		}
		parts = append(parts, Part{
			Suffix: suffix,
			Write: func(w io.Writer) error {
				return imaging.Encode(w, images.Compact(page), imaging.PNG)
			},
		})
	}
	return parts, nil
}
