package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 10.0
	rowHeight  = 6.0
	fontFamily = "Helvetica"
)

// PDF renders documents as landscape tables with go-pdf/fpdf
type PDF struct {
	paperSize string
}

// NewPDF creates a renderer for the given paper size (A4, Letter, Legal, ...)
func NewPDF(paperSize string) *PDF {
	if paperSize == "" {
		paperSize = "Legal"
	}
	return &PDF{paperSize: paperSize}
}

// Render lays out every section as a bordered table
func (p *PDF) Render(template string, doc Document) ([]byte, error) {
	var heading string
	switch template {
	case TemplateTyphoon:
		heading = "Situational Report"
	case TemplateAnnual:
		heading = "Annual Situational Summary"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}

	pdf := fpdf.New("L", "mm", p.paperSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 14)
	if doc.Office != "" {
		pdf.CellFormat(0, 7, tr(doc.Office), "", 1, "C", false, 0, "")
	}
	title := doc.Title
	if title == "" {
		title = heading
	}
	pdf.CellFormat(0, 7, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	if doc.Subtitle != "" {
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	if !doc.GeneratedAt.IsZero() {
		pdf.CellFormat(0, 6, "Generated "+doc.GeneratedAt.Format("January 2, 2006 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, s := range doc.Sections {
		p.section(pdf, tr, s)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PDF) section(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*margin

	p.ensureSpace(pdf, 3*rowHeight)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(0, 7, tr(s.Title), "", 1, "L", false, 0, "")

	if len(s.Rows) == 0 || len(s.Headers) == 0 {
		pdf.SetFont(fontFamily, "I", 9)
		pdf.CellFormat(0, rowHeight, "No records.", "", 1, "L", false, 0, "")
		pdf.Ln(3)
		return
	}

	colW := usable / float64(len(s.Headers))
	header := func() {
		pdf.SetFont(fontFamily, "B", 8)
		pdf.SetFillColor(220, 228, 240)
		for _, h := range s.Headers {
			pdf.CellFormat(colW, rowHeight, fit(pdf, tr(h), colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 8)
	}

	header()
	for _, row := range s.Rows {
		if p.ensureSpace(pdf, rowHeight) {
			header()
		}
		for i := range s.Headers {
			var v string
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(colW, rowHeight, fit(pdf, tr(v), colW), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// ensureSpace starts a new page when h does not fit; reports whether it did
func (p *PDF) ensureSpace(pdf *fpdf.Fpdf, h float64) bool {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-2*margin {
		pdf.AddPage()
		return true
	}
	return false
}

// fit truncates s with an ellipsis so it stays inside a cell of width w
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	s = strings.Join(strings.Fields(s), " ")
	limit := w - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
