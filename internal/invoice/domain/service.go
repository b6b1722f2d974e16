package domain

import (
	"context"
	"errors"
	"time"
)

type CreateInvoiceRequest struct {
	OrderID     string      `json:"order_id"`
	InvoiceType InvoiceType `json:"invoice_type"`
	// Subtotal of zero means "derive from the order": the full total for a
	// full invoice, the down-payment share for a downpayment invoice.
	Subtotal int64 `json:"subtotal"`
	// TaxAmount of nil applies the configured default tax rate.
	TaxAmount    *int64     `json:"tax_amount"`
	IssueDate    *time.Time `json:"issue_date"`
	DueDate      *time.Time `json:"due_date"`
	Notes        string     `json:"notes"`
	PaymentTerms string     `json:"payment_terms"`
}

type ListInvoiceRequest struct {
	Statuses []InvoiceStatus `form:"status"`
}

// InvoiceListItem joins display fields from the parent order onto the
// invoice for the admin list view.
type InvoiceListItem struct {
	Invoice
	CustomerName         string `json:"customer_name"`
	CustomerEmail        string `json:"customer_email"`
	ServiceName          string `json:"service_name,omitempty"`
	OrderRemainingAmount int64  `json:"order_remaining_amount"`
}

// RenderedInvoice is a fully rendered PDF plus its deterministic filename.
type RenderedInvoice struct {
	Filename string
	Content  []byte
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]InvoiceListItem, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error)
	Render(ctx context.Context, id string) (RenderedInvoice, error)
	// Send renders the invoice, emails it to the order's customer, and
	// marks a draft invoice as sent.
	Send(ctx context.Context, id string) (Invoice, error)
}

var (
	ErrNotFound            = errors.New("invoice_not_found")
	ErrInvalidID           = errors.New("invalid_invoice_id")
	ErrInvalidType         = errors.New("invalid_invoice_type")
	ErrInvalidStatus       = errors.New("invalid_invoice_status")
	ErrInvalidTransition   = errors.New("invalid_invoice_status_transition")
	ErrOrderNotInvoiceable = errors.New("order_not_invoiceable")
	// ErrSettlementFailed reports that the invoice was created but the
	// parent order's down-payment amounts could not be updated. The
	// invoice is kept; the order must be reconciled manually.
	ErrSettlementFailed = errors.New("downpayment_settlement_failed")
)
