package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/santaradigital/backoffice/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, statuses []domain.InvoiceStatus) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if len(statuses) > 0 {
		stmt = stmt.Where("status IN ?", statuses)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, patch map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(patch).Error
}

// NextSequence bumps the counter row with a single UPDATE and reads the
// value back. The row-level write lock taken by the UPDATE keeps concurrent
// transactions serialized on every supported dialect, so no dialect-specific
// locking clause is needed.
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.InvoiceSequence{}).
		Where("id = ?", domain.SequenceRowID).
		Updates(map[string]any{
			"last_value": gorm.Expr("last_value + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("invoice sequence row %d missing", domain.SequenceRowID)
	}

	var row domain.InvoiceSequence
	if err := db.WithContext(ctx).
		Where("id = ?", domain.SequenceRowID).
		First(&row).Error; err != nil {
		return 0, err
	}
	return row.LastValue, nil
}
