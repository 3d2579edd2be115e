package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
)

func resolvedOrder() orders.Order {
	return orders.Order{
		ID: 7, Code: "PK-007", ClientID: 9,
		Client:    orders.Client{ID: 9, CompanyName: "Acme Boxes"},
		Status:    orders.StatusFinished,
		Total:     9999, // stale on purpose
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Items: []orders.OrderItem{
			{Product: "corrugated boxes", Price: 10, Quantity: 2},
			{Product: "packing tape", Price: 5, Quantity: 3},
		},
	}
}

func TestBuild(t *testing.T) {
	doc := Build(resolvedOrder())

	require.Equal(t, int64(7), doc.OrderID)
	require.Equal(t, "PK-007", doc.Code)
	require.Equal(t, "Acme Boxes", doc.Company)
	require.Equal(t, "Finished", doc.Status)
	require.Equal(t, "15/03/2024", doc.Date)
	require.Equal(t, "35.00", doc.Total) // recomputed, stale 9999 ignored
	require.Equal(t, "Invoice-PK-007.pdf", doc.Filename)

	require.Len(t, doc.Lines, 2)
	require.Equal(t, Line{Product: "corrugated boxes", Quantity: 2, UnitPrice: "10.00", LineTotal: "20.00"}, doc.Lines[0])
	require.Equal(t, Line{Product: "packing tape", Quantity: 3, UnitPrice: "5.00", LineTotal: "15.00"}, doc.Lines[1])
}

func TestFilename_FallsBackToID(t *testing.T) {
	o := resolvedOrder()
	o.Code = ""
	require.Equal(t, "Invoice-7.pdf", Filename(o))
}

func TestExportPDF(t *testing.T) {
	doc := Build(resolvedOrder())

	pdf, err := doc.ExportPDF()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	require.Greater(t, len(pdf), 500)
}

func TestExportPDF_RepeatableWithoutSideEffects(t *testing.T) {
	o := resolvedOrder()
	doc := Build(o)

	_, err := doc.ExportPDF()
	require.NoError(t, err)
	_, err = doc.ExportPDF()
	require.NoError(t, err)

	// the source order was passed by value and stays untouched
	require.Equal(t, 9999.0, o.Total)
}
