// Package domain contains persistence models for landing page content.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// LandingSection is one editable block of the public landing page.
type LandingSection struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SectionName  string       `gorm:"not null" json:"section_name"`
	Slug         string       `gorm:"not null;uniqueIndex" json:"slug"`
	Title        string       `gorm:"" json:"title"`
	Subtitle     string       `gorm:"" json:"subtitle"`
	Content      string       `gorm:"type:text" json:"content"`
	IsEnabled    bool         `gorm:"not null;default:true" json:"is_enabled"`
	SectionOrder int          `gorm:"not null;default:0;index" json:"section_order"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (LandingSection) TableName() string { return "landing_content" }

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientName string       `gorm:"not null" json:"client_name"`
	ClientRole string       `gorm:"" json:"client_role"`
	Content    string       `gorm:"type:text;not null" json:"content"`
	Rating     int          `gorm:"not null;default:5" json:"rating"`
	IsFeatured bool         `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Testimonial) TableName() string { return "testimonials" }

// FooterColumn is one link column of the landing page footer. Links holds
// an ordered JSON array of {label, url} objects.
type FooterColumn struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	ColumnTitle string         `gorm:"not null" json:"column_title"`
	Links       datatypes.JSON `json:"links,omitempty"`
	ColumnOrder int            `gorm:"not null;default:0;index" json:"column_order"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (FooterColumn) TableName() string { return "footer_content" }
