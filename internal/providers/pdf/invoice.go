package pdf

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/santaradigital/backoffice/internal/invoice/format"
)

// Layout constants, in millimeters on an A4 portrait page. These anchors are
// the visual contract of the document and must not drift between releases.
const (
	leftMargin  = 20.0
	rightEdge   = 200.0
	companyTopY = 30.0
	linePitch   = 8.0

	billToY       = 100.0
	customerNameY = 112.0
	customerMailY = 122.0
	customerAddrY = 132.0

	tableStartY    = 150.0
	tableWidth     = 170.0
	tableHeadH     = 12.0
	rowPitch       = 10.0
	colDescriptionX = 25.0
	colQtyX         = 120.0
	colPriceX       = 140.0
	colTotalX       = 170.0
	totalsLabelX    = 130.0
)

var (
	accentColor = rgb{37, 99, 235}   // #2563eb
	grayColor   = rgb{107, 114, 128} // #6b7280
	darkColor   = rgb{17, 24, 39}    // #111827
	headerFill  = rgb{245, 245, 245}
)

type rgb struct{ r, g, b int }

type renderer struct{}

func NewRenderer() Renderer {
	return &renderer{}
}

// drawStep draws one section and returns the vertical cursor for the next.
// Sections anchored at fixed offsets ignore the incoming cursor.
type drawStep func(p *gofpdf.Fpdf, doc Document, y float64) float64

var invoiceSteps = []drawStep{
	drawTitleAndMeta,
	drawCompanyBlock,
	drawBillTo,
	drawItemTable,
	drawTotals,
	drawNotes,
	drawPaymentTerms,
}

func (r *renderer) RenderInvoice(_ context.Context, doc Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	p := gofpdf.New("P", "mm", "A4", "")
	// A fixed creation date keeps the output byte-identical across runs.
	p.SetCreationDate(time.Unix(0, 0).UTC())
	p.AddPage()

	y := 0.0
	for _, step := range invoiceSteps {
		y = step(p, doc, y)
	}

	if p.Err() {
		return nil, &RenderError{Reason: "document layout failed", Err: p.Error()}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, &RenderError{Reason: "write document", Err: err}
	}
	return buf.Bytes(), nil
}

func validate(doc Document) error {
	switch {
	case doc.InvoiceNumber == "":
		return &RenderError{Reason: "missing invoice number"}
	case doc.Customer.Name == "":
		return &RenderError{Reason: "missing customer name"}
	case doc.Subtotal < 0 || doc.TaxAmount < 0 || doc.TotalAmount < 0:
		return &RenderError{Reason: "negative amount"}
	case doc.IssueDate.IsZero() || doc.DueDate.IsZero():
		return &RenderError{Reason: "missing invoice dates"}
	}
	for _, item := range doc.Items {
		if item.Price < 0 || item.Total < 0 || item.Quantity < 0 {
			return &RenderError{Reason: "negative line item amount"}
		}
	}
	return nil
}

func drawTitleAndMeta(p *gofpdf.Fpdf, doc Document, _ float64) float64 {
	setColor(p, accentColor)
	p.SetFont("Helvetica", "", 24)
	p.Text(leftMargin, 30, "INVOICE")

	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 12)
	p.Text(leftMargin, 50, "Invoice #: "+doc.InvoiceNumber)
	p.Text(leftMargin, 60, "Issue Date: "+format.Date(doc.IssueDate))
	p.Text(leftMargin, 70, "Due Date: "+format.Date(doc.DueDate))
	return 0
}

// drawCompanyBlock right-aligns each identity line against the page edge.
// Empty optional lines are filtered out first so no gap is left behind.
func drawCompanyBlock(p *gofpdf.Fpdf, doc Document, _ float64) float64 {
	taxLine := ""
	if doc.Company.TaxNumber != "" {
		taxLine = "NPWP: " + doc.Company.TaxNumber
	}
	lines := filterEmpty([]string{
		doc.Company.Name,
		doc.Company.Address,
		doc.Company.Phone,
		doc.Company.Email,
		doc.Company.Website,
		taxLine,
	})

	setColor(p, grayColor)
	p.SetFont("Helvetica", "", 10)
	y := companyTopY
	for _, line := range lines {
		p.Text(rightEdge-p.GetStringWidth(line), y, line)
		y += linePitch
	}
	return 0
}

func drawBillTo(p *gofpdf.Fpdf, doc Document, _ float64) float64 {
	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 12)
	p.Text(leftMargin, billToY, "Bill To:")

	p.SetFont("Helvetica", "", 10)
	p.Text(leftMargin, customerNameY, doc.Customer.Name)
	p.Text(leftMargin, customerMailY, doc.Customer.Email)
	if doc.Customer.Address != "" {
		p.Text(leftMargin, customerAddrY, doc.Customer.Address)
	}
	return 0
}

func drawItemTable(p *gofpdf.Fpdf, doc Document, _ float64) float64 {
	y := tableStartY

	p.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	p.Rect(leftMargin, y, tableWidth, tableHeadH, "F")

	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 10)
	p.Text(colDescriptionX, y+8, "Description")
	p.Text(colQtyX, y+8, "Qty")
	p.Text(colPriceX, y+8, "Price")
	p.Text(colTotalX, y+8, "Total")

	y += 15
	for _, item := range doc.Items {
		p.Text(colDescriptionX, y, item.Description)
		p.Text(colQtyX, y, strconv.FormatInt(item.Quantity, 10))
		p.Text(colPriceX, y, format.Rupiah(item.Price))
		p.Text(colTotalX, y, format.Rupiah(item.Total))
		y += rowPitch
	}
	return y
}

func drawTotals(p *gofpdf.Fpdf, doc Document, y float64) float64 {
	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 10)

	y += rowPitch
	p.Text(totalsLabelX, y, "Subtotal:")
	p.Text(colTotalX, y, format.Rupiah(doc.Subtotal))

	if doc.TaxAmount > 0 {
		y += rowPitch
		p.Text(totalsLabelX, y, "Tax:")
		p.Text(colTotalX, y, format.Rupiah(doc.TaxAmount))
	}

	y += rowPitch
	setColor(p, accentColor)
	p.SetFont("Helvetica", "", 12)
	p.Text(totalsLabelX, y, "Total:")
	p.Text(colTotalX, y, format.Rupiah(doc.TotalAmount))
	return y
}

func drawNotes(p *gofpdf.Fpdf, doc Document, y float64) float64 {
	if doc.Notes == "" {
		return y
	}
	y += 20
	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 10)
	p.Text(leftMargin, y, "Notes:")
	y += rowPitch
	p.Text(leftMargin, y, doc.Notes)
	return y
}

func drawPaymentTerms(p *gofpdf.Fpdf, doc Document, y float64) float64 {
	if doc.PaymentTerms == "" {
		return y
	}
	y += 15
	setColor(p, darkColor)
	p.SetFont("Helvetica", "", 10)
	p.Text(leftMargin, y, "Payment Terms:")
	y += rowPitch
	p.Text(leftMargin, y, doc.PaymentTerms)
	return y
}

func setColor(p *gofpdf.Fpdf, c rgb) {
	p.SetTextColor(c.r, c.g, c.b)
}

func filterEmpty(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
