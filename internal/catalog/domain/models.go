// Package domain contains persistence models for the service catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Offering is a digital service customers can order.
type Offering struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	Price       int64             `gorm:"not null;default:0" json:"price"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Offering) TableName() string { return "services" }
