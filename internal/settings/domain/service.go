package domain

import (
	"context"
	"errors"
)

type UpdateSettingsRequest struct {
	SMTPHost     *string `json:"smtp_host"`
	SMTPPort     *int    `json:"smtp_port"`
	SMTPUsername *string `json:"smtp_username"`
	SMTPPassword *string `json:"smtp_password"`
	FromEmail    *string `json:"from_email"`
	FromName     *string `json:"from_name"`
	EmailEnabled *bool   `json:"email_enabled"`

	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyPhone   *string `json:"company_phone"`
	CompanyEmail   *string `json:"company_email"`
	CompanyWebsite *string `json:"company_website"`
	TaxNumber      *string `json:"tax_number"`

	InvoiceNumberTemplate *string `json:"invoice_number_template"`
	DefaultPaymentTerms   *string `json:"default_payment_terms"`
	TaxRateBps            *int    `json:"tax_rate_bps"`
}

type Service interface {
	// Get returns the settings row, falling back to document config
	// defaults for unset invoice fields.
	Get(ctx context.Context) (Settings, error)
	// Update upserts the single settings row with the provided fields.
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

var (
	ErrInvalidSMTPPort = errors.New("invalid_smtp_port")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
)
