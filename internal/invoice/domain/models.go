// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// The flow is draft -> sent -> paid; a sent invoice may lapse to overdue
// and still be paid afterwards.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return next == InvoiceStatusSent
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid || next == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return next == InvoiceStatusPaid
	default:
		return false
	}
}

// InvoiceType distinguishes full invoices from down-payment invoices.
type InvoiceType string

const (
	InvoiceTypeFull        InvoiceType = "full"
	InvoiceTypeDownpayment InvoiceType = "downpayment"
)

func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeFull || t == InvoiceTypeDownpayment
}

// Invoice references exactly one order. Its numeric fields are fixed at
// creation and never recomputed on read; total_amount = subtotal + tax_amount.
// DownpaymentPercentage is a snapshot taken when a down-payment invoice is
// issued, not a live view of the order.
type Invoice struct {
	ID                    snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrderID               snowflake.ID      `gorm:"not null;index" json:"order_id"`
	InvoiceNumber         string            `gorm:"not null;uniqueIndex" json:"invoice_number"`
	Status                InvoiceStatus     `gorm:"type:text;not null;default:'draft';index" json:"status"`
	InvoiceType           InvoiceType       `gorm:"type:text;not null;default:'full'" json:"invoice_type"`
	DownpaymentPercentage int64             `gorm:"not null;default:0" json:"downpayment_percentage"`
	Subtotal              int64             `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount             int64             `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount           int64             `gorm:"not null;default:0" json:"total_amount"`
	IssueDate             time.Time         `gorm:"not null" json:"issue_date"`
	DueDate               time.Time         `gorm:"not null" json:"due_date"`
	Notes                 string            `gorm:"type:text" json:"notes,omitempty"`
	PaymentTerms          string            `gorm:"" json:"payment_terms,omitempty"`
	Metadata              datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// IsDownpayment reports whether this invoice covers only the DP portion.
func (i Invoice) IsDownpayment() bool { return i.InvoiceType == InvoiceTypeDownpayment }

// InvoiceSequence backs the monotonic invoice number counter. A single row
// with a fixed id holds the last issued sequence value.
type InvoiceSequence struct {
	ID        int64     `gorm:"primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }

// SequenceRowID is the fixed primary key of the counter row.
const SequenceRowID int64 = 1
