// Package domain contains persistence models for customer orders.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// OrderStatus represents order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// The flow is pending -> in_progress -> completed; cancellation is allowed
// until the order completes.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusInProgress || next == OrderStatusCancelled
	case OrderStatusInProgress:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// Invoiceable reports whether an invoice may be issued against the order.
func (s OrderStatus) Invoiceable() bool {
	return s == OrderStatusInProgress || s == OrderStatusCompleted
}

// Order is a customer's request for one catalog service.
//
// Whenever the down payment is enabled the amounts satisfy
// remaining_amount = total_amount - downpayment_amount; otherwise the
// down payment is zero and remaining equals the total.
type Order struct {
	ID                    snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerName          string            `gorm:"not null" json:"customer_name"`
	CustomerEmail         string            `gorm:"not null" json:"customer_email"`
	CustomerPhone         string            `gorm:"" json:"customer_phone,omitempty"`
	ServiceID             snowflake.ID      `gorm:"not null;index" json:"service_id"`
	CustomRequirements    string            `gorm:"type:text" json:"custom_requirements,omitempty"`
	BudgetRange           string            `gorm:"" json:"budget_range,omitempty"`
	DeadlineDate          *time.Time        `gorm:"" json:"deadline_date,omitempty"`
	Status                OrderStatus       `gorm:"type:text;not null;default:'pending';index" json:"status"`
	TotalAmount           int64             `gorm:"not null;default:0" json:"total_amount"`
	DownpaymentPercentage int64             `gorm:"not null;default:0" json:"downpayment_percentage"`
	DownpaymentAmount     int64             `gorm:"not null;default:0" json:"downpayment_amount"`
	RemainingAmount       int64             `gorm:"not null;default:0" json:"remaining_amount"`
	Metadata              datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }
