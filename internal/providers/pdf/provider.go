// Package pdf renders invoice documents. The layout is a fixed millimeter
// grid on A4; rendering the same document twice yields identical bytes.
package pdf

import (
	"context"
	"fmt"
	"time"
)

// Document is a self-contained snapshot of everything an invoice PDF shows.
// All fields are resolved before rendering; the renderer performs no lookups.
type Document struct {
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time

	Customer Customer
	Company  Company
	Items    []LineItem

	Subtotal    int64
	TaxAmount   int64
	TotalAmount int64

	Notes        string
	PaymentTerms string
}

type Customer struct {
	Name    string
	Email   string
	Address string
}

type Company struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	Website   string
	TaxNumber string
}

type LineItem struct {
	Description string
	Quantity    int64
	Price       int64
	Total       int64
}

// Filename is the deterministic download name for the rendered document.
func (d Document) Filename() string {
	return fmt.Sprintf("invoice-%s.pdf", d.InvoiceNumber)
}

// RenderError reports a document that could not be rendered. No partial
// output is ever produced alongside one.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render invoice: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("render invoice: %s", e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }

type Renderer interface {
	RenderInvoice(ctx context.Context, doc Document) ([]byte, error)
}
