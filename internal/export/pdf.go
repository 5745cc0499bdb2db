package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// DejaVu covers č, ć, đ, š and ž, which the core PDF fonts cannot encode.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuBold []byte
)

const pdfFont = "DejaVu"

const (
	pdfMargin       = 15.0
	pdfBottomMargin = 20.0
	pdfRowHeight    = 6.0
)

// WritePDF renders an A4 portrait document: optional logo, bold title line,
// the table and a footer on every page. A new page starts, with the column
// labels repeated, once the next row would cross the bottom margin.
func WritePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AddUTF8FontFromBytes(pdfFont, "", dejaVuRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", dejaVuBold)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load pdf font: %w", err)
	}

	pageW, pageH := pdf.GetPageSize()
	footer := doc.Footer
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat((pageW-2*pdfMargin)/2, 5, footer, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	if doc.Logo != nil {
		opts := fpdf.ImageOptions{ImageType: doc.Logo.Type}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(doc.Logo.Data))
		if pdf.Ok() {
			pdf.ImageOptions("logo", pdfMargin, pdfMargin, 28, 0, false, opts, 0, "")
			pdf.SetY(pdfMargin + 24)
		} else {
			// an unreadable logo must not fail the export
			pdf.ClearError()
		}
	}

	title := doc.Header
	if title == "" {
		title = doc.Title
	}
	if title != "" {
		pdf.SetFont(pdfFont, "B", 18)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	cols := len(doc.Headers)
	if cols == 0 {
		return pdf.Output(w)
	}
	colW := (pageW - 2*pdfMargin) / float64(cols)

	drawHeader := func() {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range doc.Headers {
			pdf.CellFormat(colW, pdfRowHeight+1, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 10)
	}
	drawHeader()

	for _, row := range doc.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfBottomMargin {
			pdf.AddPage()
			drawHeader()
		}
		for i := 0; i < cols; i++ {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(colW, pdfRowHeight, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}
