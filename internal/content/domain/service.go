package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

type UpsertSectionRequest struct {
	SectionName  string `json:"section_name"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Content      string `json:"content"`
	IsEnabled    *bool  `json:"is_enabled"`
	SectionOrder int    `json:"section_order"`
}

type UpsertTestimonialRequest struct {
	ClientName string `json:"client_name"`
	ClientRole string `json:"client_role"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	IsFeatured *bool  `json:"is_featured"`
}

type UpsertFooterColumnRequest struct {
	ColumnTitle string         `json:"column_title"`
	Links       datatypes.JSON `json:"links"`
	ColumnOrder int            `json:"column_order"`
}

// Service manages the three landing-page content tables. Upserts create
// when id is empty and update otherwise, matching the admin form flow.
type Service interface {
	ListSections(ctx context.Context) ([]LandingSection, error)
	UpsertSection(ctx context.Context, id string, req UpsertSectionRequest) (LandingSection, error)
	DeleteSection(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	UpsertTestimonial(ctx context.Context, id string, req UpsertTestimonialRequest) (Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error

	ListFooterColumns(ctx context.Context) ([]FooterColumn, error)
	UpsertFooterColumn(ctx context.Context, id string, req UpsertFooterColumnRequest) (FooterColumn, error)
	DeleteFooterColumn(ctx context.Context, id string) error
}

var (
	ErrNotFound           = errors.New("content_not_found")
	ErrInvalidID          = errors.New("invalid_content_id")
	ErrInvalidSectionName = errors.New("invalid_section_name")
	ErrInvalidClientName  = errors.New("invalid_client_name")
	ErrInvalidRating      = errors.New("invalid_rating")
	ErrInvalidColumnTitle = errors.New("invalid_column_title")
)
