package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/santaradigital/backoffice/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	var orders []*domain.Order
	stmt := db.WithContext(ctx).Model(&domain.Order{})
	if len(statuses) > 0 {
		stmt = stmt.Where("status IN ?", statuses)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, patch map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(patch).Error
}
