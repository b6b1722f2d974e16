// Package repository exposes a generic gorm-backed record store used as the
// persistence boundary by the domain services.
package repository

import (
	"context"

	"github.com/santaradigital/backoffice/pkg/db/option"
	"gorm.io/gorm"
)

type Store[T any] interface {
	WithTrx(tx *gorm.DB) Store[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Update(ctx context.Context, recordID int64, patch any) error
	Delete(ctx context.Context, recordID int64) error
	Count(ctx context.Context, query *T) (int64, error)
}
