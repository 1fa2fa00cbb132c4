package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Grid layout, in points.
const (
	gridFontFamily = "Helvetica"
	gridFontSize   = 10
	gridRowHeight  = 18
	gridCellPad    = 6
)

// PDFRenderer renders documents as A4 PDF files using the core fonts.
//
// Design decision: The core fonts need no font files on disk, which keeps
// the binary self-contained. They only cover Windows-1252, so text is
// transcoded first and characters outside that code page become '?'.
type PDFRenderer struct {
	styles  *StyleSheet
	title   string
	created time.Time
}

// PDFOption configures a PDFRenderer.
type PDFOption func(*PDFRenderer)

// WithStyleSheet replaces the default style sheet.
func WithStyleSheet(s *StyleSheet) PDFOption {
	return func(r *PDFRenderer) {
		if s != nil {
			r.styles = s
		}
	}
}

// WithTitle sets the PDF title metadata.
func WithTitle(title string) PDFOption {
	return func(r *PDFRenderer) {
		r.title = title
	}
}

// WithCreationDate fixes the creation date stored in the PDF.
func WithCreationDate(t time.Time) PDFOption {
	return func(r *PDFRenderer) {
		r.created = t
	}
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{
		styles: DefaultStyleSheet(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes doc to w as a PDF.
// A page break starts a new page only when more content follows it.
func (r *PDFRenderer) Render(doc *Document, w io.Writer) error {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(true, PageMargin)
	pdf.SetCreator("rollcall", true)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	if !r.created.IsZero() {
		pdf.SetCreationDate(r.created)
	}
	pdf.AddPage()

	pendingBreak := false
	for _, e := range doc.Elements() {
		if _, ok := e.(PageBreak); ok {
			pendingBreak = true
			continue
		}
		if pendingBreak {
			pdf.AddPage()
			pendingBreak = false
		}

		switch el := e.(type) {
		case Paragraph:
			r.paragraph(pdf, enc, el)
		case Spacer:
			pdf.Ln(el.Height)
		case Grid:
			r.grid(pdf, enc, el)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("failed to render PDF: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (r *PDFRenderer) paragraph(pdf *fpdf.Fpdf, enc *encoding.Encoder, p Paragraph) {
	st := r.styles.Get(p.Style)

	fontStyle := ""
	if st.Bold {
		fontStyle = "B"
	}
	pdf.SetFont(st.FontFamily, fontStyle, st.FontSize)
	pdf.MultiCell(0, st.Leading, transcode(enc, p.Text), "", st.Alignment.pdfAlign(), false)
}

// grid draws the rows as a borderless table centered between the margins.
// Columns are as wide as their widest cell; the table is scaled down when
// it does not fit.
func (r *PDFRenderer) grid(pdf *fpdf.Fpdf, enc *encoding.Encoder, g Grid) {
	if len(g.Rows) == 0 {
		return
	}
	pdf.SetFont(gridFontFamily, "", gridFontSize)

	rows := make([][]string, len(g.Rows))
	columns := 0
	for i, row := range g.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = transcode(enc, cell)
		}
		columns = max(columns, len(row))
	}

	widths := make([]float64, columns)
	for _, row := range rows {
		for j, cell := range row {
			widths[j] = max(widths[j], pdf.GetStringWidth(cell)+2*gridCellPad)
		}
	}

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	available := pageW - left - right

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > available {
		scale := available / total
		for j := range widths {
			widths[j] *= scale
		}
		total = available
	}
	x0 := left + (available-total)/2

	for _, row := range rows {
		if pdf.GetY()+gridRowHeight > pageH-bottom {
			pdf.AddPage()
			pdf.SetFont(gridFontFamily, "", gridFontSize)
		}
		pdf.SetX(x0)
		for j := range columns {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			pdf.CellFormat(widths[j], gridRowHeight, text, "", 0, "L", false, 0, "")
		}
		pdf.Ln(gridRowHeight)
	}
}

// transcode converts s to Windows-1252 for the core fonts.
func transcode(enc *encoding.Encoder, s string) string {
	out, err := enc.String(s)
	if err != nil {
		return s
	}
	return out
}
