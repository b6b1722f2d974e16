package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, statuses []OrderStatus) ([]*Order, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, patch map[string]any) error
}
