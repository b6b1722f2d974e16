// Package domain contains the persisted application settings.
package domain

import "time"

// SettingsRowID is the fixed primary key of the single settings row.
const SettingsRowID int64 = 1

// Settings is the single-row application configuration edited from the
// admin panel: SMTP delivery, company identity shown on invoices, and
// invoice numbering defaults.
type Settings struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	SMTPHost     string `gorm:"" json:"smtp_host"`
	SMTPPort     int    `gorm:"not null;default:587" json:"smtp_port"`
	SMTPUsername string `gorm:"" json:"smtp_username"`
	SMTPPassword string `gorm:"" json:"-"`
	FromEmail    string `gorm:"" json:"from_email"`
	FromName     string `gorm:"" json:"from_name"`
	EmailEnabled bool   `gorm:"not null;default:false" json:"email_enabled"`

	CompanyName    string `gorm:"" json:"company_name"`
	CompanyAddress string `gorm:"" json:"company_address"`
	CompanyPhone   string `gorm:"" json:"company_phone"`
	CompanyEmail   string `gorm:"" json:"company_email"`
	CompanyWebsite string `gorm:"" json:"company_website"`
	TaxNumber      string `gorm:"" json:"tax_number"`

	InvoiceNumberTemplate string `gorm:"" json:"invoice_number_template"`
	DefaultPaymentTerms   string `gorm:"" json:"default_payment_terms"`
	// TaxRateBps is a pointer so a stored zero rate is distinguishable from
	// "never configured": only NULL falls back to the document config.
	TaxRateBps *int `gorm:"" json:"tax_rate_bps"`

	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Settings) TableName() string { return "settings" }
