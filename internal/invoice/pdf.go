package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

var colWidths = [4]float64{90, 25, 35, 35}

// ExportPDF renders the document to a paginated A4 PDF. Long line tables
// page-break automatically; the header repeats only on the first page.
func (d Document) ExportPDF() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+d.Code, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range [][2]string{
		{"Order", fmt.Sprintf("%s (#%d)", d.Code, d.OrderID)},
		{"Client", d.Company},
		{"Status", d.Status},
		{"Date", d.Date},
	} {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(25, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Product", "Qty", "Unit Price", "Line Total"} {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, ln := range d.Lines {
		pdf.CellFormat(colWidths[0], 7, ln.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("%d", ln.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, ln.UnitPrice, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, ln.LineTotal, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, d.Total, "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.Filename, err)
	}
	return buf.Bytes(), nil
}
