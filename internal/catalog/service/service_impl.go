package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/pkg/db/option"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Store repository.Store[domain.Offering]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	store repository.Store[domain.Offering]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		store: p.Store,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOfferingRequest) (domain.Offering, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Offering{}, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return domain.Offering{}, domain.ErrInvalidPrice
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	offering := domain.Offering{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		IsActive:    active,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, &offering); err != nil {
		return domain.Offering{}, err
	}
	return offering, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOfferingRequest) ([]domain.Offering, error) {
	filter := &domain.Offering{}
	opts := []option.QueryOption{option.OrderBy("created_at desc, id desc")}
	if req.ActiveOnly {
		opts = append(opts, option.Where("is_active = ?", true))
	}

	items, err := s.store.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	offerings := make([]domain.Offering, 0, len(items))
	for _, item := range items {
		if item != nil {
			offerings = append(offerings, *item)
		}
	}
	return offerings, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Offering, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Offering{}, domain.ErrInvalidID
	}

	item, err := s.store.FindOne(ctx, &domain.Offering{ID: parsed})
	if err != nil {
		return domain.Offering{}, err
	}
	if item == nil {
		return domain.Offering{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateOfferingRequest) (domain.Offering, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Offering{}, err
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Offering{}, domain.ErrInvalidName
		}
		patch["name"] = name
	}
	if req.Description != nil {
		patch["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.Offering{}, domain.ErrInvalidPrice
		}
		patch["price"] = *req.Price
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}

	if err := s.store.Update(ctx, int64(current.ID), patch); err != nil {
		return domain.Offering{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, int64(current.ID))
}
