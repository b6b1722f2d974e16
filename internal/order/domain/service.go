package domain

import (
	"context"
	"errors"
	"time"
)

type CreateOrderRequest struct {
	CustomerName          string     `json:"customer_name"`
	CustomerEmail         string     `json:"customer_email"`
	CustomerPhone         string     `json:"customer_phone"`
	ServiceID             string     `json:"service_id"`
	CustomRequirements    string     `json:"custom_requirements"`
	BudgetRange           string     `json:"budget_range"`
	DeadlineDate          *time.Time `json:"deadline_date"`
	TotalAmount           int64      `json:"total_amount"`
	UseDownpayment        bool       `json:"use_downpayment"`
	DownpaymentPercentage int64      `json:"downpayment_percentage"`
}

type UpdateOrderAmountsRequest struct {
	TotalAmount           *int64 `json:"total_amount"`
	UseDownpayment        *bool  `json:"use_downpayment"`
	DownpaymentPercentage *int64 `json:"downpayment_percentage"`
}

type ListOrderRequest struct {
	Statuses []OrderStatus `form:"status"`
}

// DownpaymentSettlement records the amounts a down-payment invoice covers.
type DownpaymentSettlement struct {
	DownpaymentAmount int64
	RemainingAmount   int64
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)
	List(ctx context.Context, req ListOrderRequest) ([]Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (Order, error)
	UpdateAmounts(ctx context.Context, id string, req UpdateOrderAmountsRequest) (Order, error)
	// SettleDownpayment overwrites the order's down-payment split after a
	// down-payment invoice is issued against it.
	SettleDownpayment(ctx context.Context, id string, settlement DownpaymentSettlement) error
}

var (
	ErrNotFound             = errors.New("order_not_found")
	ErrInvalidID            = errors.New("invalid_order_id")
	ErrInvalidCustomerName  = errors.New("invalid_customer_name")
	ErrInvalidCustomerEmail = errors.New("invalid_customer_email")
	ErrInvalidService       = errors.New("invalid_order_service")
	ErrInvalidStatus        = errors.New("invalid_order_status")
	ErrInvalidTransition    = errors.New("invalid_order_status_transition")
)
