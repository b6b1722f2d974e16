package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		InvoiceNumber: "INV-20250807-0001",
		IssueDate:     time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC),
		Customer: Customer{
			Name:  "Budi Santoso",
			Email: "budi@example.com",
		},
		Company: Company{
			Name:      "Digital Service Company",
			Address:   "Jl. Digital No. 123, Jakarta",
			Phone:     "+62 21 1234567",
			Email:     "info@digitalservice.com",
			Website:   "www.digitalservice.com",
			TaxNumber: "12.345.678.9-012.345",
		},
		Items: []LineItem{
			{Description: "Company Profile Website", Quantity: 1, Price: 8_000_000, Total: 8_000_000},
		},
		Subtotal:     8_000_000,
		TaxAmount:    800_000,
		TotalAmount:  8_800_000,
		Notes:        "Pembayaran melalui transfer bank",
		PaymentTerms: "30 days",
	}
}

func TestRenderInvoice_Deterministic(t *testing.T) {
	r := NewRenderer()
	doc := sampleDocument()

	first, err := r.RenderInvoice(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := r.RenderInvoice(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderInvoice_MalformedDocument(t *testing.T) {
	r := NewRenderer()

	cases := map[string]func(*Document){
		"missing invoice number": func(d *Document) { d.InvoiceNumber = "" },
		"missing customer name":  func(d *Document) { d.Customer.Name = "" },
		"negative subtotal":      func(d *Document) { d.Subtotal = -1 },
		"negative item price":    func(d *Document) { d.Items[0].Price = -1 },
		"missing issue date":     func(d *Document) { d.IssueDate = time.Time{} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			doc := sampleDocument()
			mutate(&doc)

			out, err := r.RenderInvoice(context.Background(), doc)
			var rErr *RenderError
			require.ErrorAs(t, err, &rErr)
			assert.Nil(t, out, "no partial output on failure")
		})
	}
}

func TestDocumentFilename(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, "invoice-INV-20250807-0001.pdf", doc.Filename())
}

func newTestPage() *gofpdf.Fpdf {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	return p
}

func TestDrawTotals_TaxLineOmittedWhenZero(t *testing.T) {
	withTax := sampleDocument()
	noTax := sampleDocument()
	noTax.TaxAmount = 0
	noTax.TotalAmount = noTax.Subtotal

	start := 175.0
	endWithTax := drawTotals(newTestPage(), withTax, start)
	endNoTax := drawTotals(newTestPage(), noTax, start)

	// Three lines with tax, two without; pitch 10mm.
	assert.Equal(t, start+3*rowPitch, endWithTax)
	assert.Equal(t, start+2*rowPitch, endNoTax)
}

func TestDrawOptionalSections_SkipEntirely(t *testing.T) {
	doc := sampleDocument()
	doc.Notes = ""
	doc.PaymentTerms = ""

	y := 200.0
	assert.Equal(t, y, drawNotes(newTestPage(), doc, y))
	assert.Equal(t, y, drawPaymentTerms(newTestPage(), doc, y))

	doc = sampleDocument()
	assert.Greater(t, drawNotes(newTestPage(), doc, y), y)
}

func TestDrawItemTable_AdvancesPerRow(t *testing.T) {
	doc := sampleDocument()
	doc.Items = append(doc.Items, LineItem{Description: "Maintenance", Quantity: 1, Price: 500_000, Total: 500_000})

	end := drawItemTable(newTestPage(), doc, 0)
	assert.Equal(t, tableStartY+15+2*rowPitch, end)
}

func TestFilterEmpty(t *testing.T) {
	got := filterEmpty([]string{"a", "", "b", ""})
	assert.Equal(t, []string{"a", "b"}, got)
}
