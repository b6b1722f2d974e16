package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, statuses []InvoiceStatus) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, patch map[string]any) error
	// NextSequence increments and returns the monotonic invoice counter.
	// Must be called inside the transaction that inserts the invoice so
	// an aborted create does not burn a number silently.
	NextSequence(ctx context.Context, db *gorm.DB) (int64, error)
}
