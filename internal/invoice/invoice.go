// Package invoice renders a resolved order into an immutable, display-ready
// snapshot and exports it as a PDF. Pure read path: building or exporting
// never touches order state and is safe to repeat.
package invoice

import (
	"fmt"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
)

type Line struct {
	Product   string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// Document is the frozen rendering of one order. All money and dates are
// pre-formatted strings; nothing here is recomputed after Build.
type Document struct {
	OrderID  int64
	Code     string
	Company  string
	Status   string
	Date     string
	Total    string
	Lines    []Line
	Filename string
}

// Filename derives the export name from the code, falling back to the id:
// Invoice-<code-or-id>.pdf.
func Filename(o orders.Order) string {
	ref := o.Code
	if ref == "" {
		ref = fmt.Sprintf("%d", o.ID)
	}
	return "Invoice-" + ref + ".pdf"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Build snapshots the order. Totals are recomputed from the lines one last
// time so the document can never show a stale figure; the order itself is
// left untouched.
func Build(o orders.Order) Document {
	doc := Document{
		OrderID:  o.ID,
		Code:     o.Code,
		Company:  o.Client.CompanyName,
		Status:   o.Status.Label(),
		Date:     o.CreatedAt.Format(orders.DateLayout),
		Filename: Filename(o),
	}
	var total float64
	for _, it := range o.Items {
		line := orders.ExtendedPrice(it.Price, it.Quantity)
		total += line
		doc.Lines = append(doc.Lines, Line{
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: money(it.Price),
			LineTotal: money(line),
		})
	}
	doc.Total = money(total)
	return doc
}
