package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/internal/invoice/calc"
	"github.com/santaradigital/backoffice/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Catalog catalogdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	catalog catalogdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return domain.Order{}, domain.ErrInvalidCustomerName
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Order{}, domain.ErrInvalidCustomerEmail
	}

	offering, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) || errors.Is(err, catalogdomain.ErrInvalidID) {
			return domain.Order{}, domain.ErrInvalidService
		}
		return domain.Order{}, err
	}

	// A manual total overrides the list price when present and nonzero.
	basePrice := offering.Price
	if req.TotalAmount > 0 {
		basePrice = req.TotalAmount
	}

	totals, err := calc.ComputeOrderTotals(basePrice, req.DownpaymentPercentage, req.UseDownpayment)
	if err != nil {
		return domain.Order{}, err
	}

	pct := int64(0)
	if req.UseDownpayment {
		pct = req.DownpaymentPercentage
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:                    s.genID.Generate(),
		CustomerName:          name,
		CustomerEmail:         email,
		CustomerPhone:         strings.TrimSpace(req.CustomerPhone),
		ServiceID:             offering.ID,
		CustomRequirements:    strings.TrimSpace(req.CustomRequirements),
		BudgetRange:           strings.TrimSpace(req.BudgetRange),
		DeadlineDate:          req.DeadlineDate,
		Status:                domain.OrderStatusPending,
		TotalAmount:           totals.TotalAmount,
		DownpaymentPercentage: pct,
		DownpaymentAmount:     totals.DownpaymentAmount,
		RemainingAmount:       totals.RemainingAmount,
		Metadata:              datatypes.JSONMap{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) ([]domain.Order, error) {
	for _, status := range req.Statuses {
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	items, err := s.repo.List(ctx, s.db, req.Statuses)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item != nil {
			orders = append(orders, *item)
		}
	}
	return orders, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Order{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Order{}, err
	}
	if item == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.ErrInvalidStatus
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if current.Status == status {
		return current, nil
	}
	if !current.Status.CanTransitionTo(status) {
		return domain.Order{}, domain.ErrInvalidTransition
	}

	patch := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, s.db, current.ID, patch); err != nil {
		return domain.Order{}, err
	}
	return s.GetByID(ctx, id)
}

// UpdateAmounts re-derives the down-payment split from the edited inputs so
// the order invariant keeps holding after staff adjustments.
func (s *Service) UpdateAmounts(ctx context.Context, id string, req domain.UpdateOrderAmountsRequest) (domain.Order, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	basePrice := current.TotalAmount
	if req.TotalAmount != nil {
		basePrice = *req.TotalAmount
	}

	useDownpayment := current.DownpaymentPercentage > 0
	if req.UseDownpayment != nil {
		useDownpayment = *req.UseDownpayment
	}

	pct := current.DownpaymentPercentage
	if req.DownpaymentPercentage != nil {
		pct = *req.DownpaymentPercentage
	}

	totals, err := calc.ComputeOrderTotals(basePrice, pct, useDownpayment)
	if err != nil {
		return domain.Order{}, err
	}
	if !useDownpayment {
		pct = 0
	}

	patch := map[string]any{
		"total_amount":           totals.TotalAmount,
		"downpayment_percentage": pct,
		"downpayment_amount":     totals.DownpaymentAmount,
		"remaining_amount":       totals.RemainingAmount,
		"updated_at":             time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, s.db, current.ID, patch); err != nil {
		return domain.Order{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) SettleDownpayment(ctx context.Context, id string, settlement domain.DownpaymentSettlement) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch := map[string]any{
		"downpayment_amount": settlement.DownpaymentAmount,
		"remaining_amount":   settlement.RemainingAmount,
		"updated_at":         time.Now().UTC(),
	}
	return s.repo.Update(ctx, s.db, current.ID, patch)
}
