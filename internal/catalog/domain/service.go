package domain

import (
	"context"
	"errors"
)

type CreateOfferingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateOfferingRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

type ListOfferingRequest struct {
	ActiveOnly bool `form:"active_only"`
}

type Service interface {
	Create(ctx context.Context, req CreateOfferingRequest) (Offering, error)
	List(ctx context.Context, req ListOfferingRequest) ([]Offering, error)
	GetByID(ctx context.Context, id string) (Offering, error)
	Update(ctx context.Context, id string, req UpdateOfferingRequest) (Offering, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound     = errors.New("service_not_found")
	ErrInvalidID    = errors.New("invalid_service_id")
	ErrInvalidName  = errors.New("invalid_service_name")
	ErrInvalidPrice = errors.New("invalid_service_price")
)
