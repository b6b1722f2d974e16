package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/invoice/calc"
	"github.com/santaradigital/backoffice/internal/invoice/domain"
	"github.com/santaradigital/backoffice/internal/invoice/format"
	orderdomain "github.com/santaradigital/backoffice/internal/order/domain"
	"github.com/santaradigital/backoffice/internal/providers/email"
	"github.com/santaradigital/backoffice/internal/providers/pdf"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Orders   orderdomain.Service
	Catalog  catalogdomain.Service
	Settings settingsdomain.Service
	Document *config.DocumentConfigHolder
	Renderer pdf.Renderer
	Mailer   email.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	orders   orderdomain.Service
	catalog  catalogdomain.Service
	settings settingsdomain.Service
	document *config.DocumentConfigHolder
	renderer pdf.Renderer
	mailer   email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		orders:   p.Orders,
		catalog:  p.Catalog,
		settings: p.Settings,
		document: p.Document,
		renderer: p.Renderer,
		mailer:   p.Mailer,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if !req.InvoiceType.Valid() {
		return domain.Invoice{}, domain.ErrInvalidType
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if !order.Status.Invoiceable() {
		return domain.Invoice{}, domain.ErrOrderNotInvoiceable
	}

	subtotal, pct, err := resolveSubtotal(req, order)
	if err != nil {
		return domain.Invoice{}, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}

	taxAmount := int64(0)
	if req.TaxAmount != nil {
		taxAmount = *req.TaxAmount
	} else {
		rate := 0
		if cfg.TaxRateBps != nil {
			rate = *cfg.TaxRateBps
		}
		taxAmount, err = calc.ComputeTax(subtotal, rate)
		if err != nil {
			return domain.Invoice{}, err
		}
	}

	total, err := calc.ComputeInvoiceTotal(subtotal, taxAmount)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, s.document.Current().DueDays)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	paymentTerms := strings.TrimSpace(req.PaymentTerms)
	if paymentTerms == "" {
		paymentTerms = cfg.DefaultPaymentTerms
	}

	template := strings.TrimSpace(cfg.InvoiceNumberTemplate)
	if template == "" {
		template = format.DefaultInvoiceNumberTemplate
	}

	invoice := domain.Invoice{
		ID:                    s.genID.Generate(),
		OrderID:               order.ID,
		Status:                domain.InvoiceStatusDraft,
		InvoiceType:           req.InvoiceType,
		DownpaymentPercentage: pct,
		Subtotal:              subtotal,
		TaxAmount:             taxAmount,
		TotalAmount:           total,
		IssueDate:             issueDate,
		DueDate:               dueDate,
		Notes:                 strings.TrimSpace(req.Notes),
		PaymentTerms:          paymentTerms,
		Metadata:              datatypes.JSONMap{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	// Numbering and insert share a transaction so an aborted create does
	// not leave a gap behind a committed counter bump.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(ctx, tx)
		if err != nil {
			return err
		}
		number, err := format.InvoiceNumber(template, issueDate, seq)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	if invoice.IsDownpayment() {
		settlement := orderdomain.DownpaymentSettlement{
			DownpaymentAmount: subtotal,
			RemainingAmount:   order.TotalAmount - subtotal,
		}
		if err := s.orders.SettleDownpayment(ctx, order.ID.String(), settlement); err != nil {
			// The invoice is already committed; keep it and surface the
			// settlement failure so staff can reconcile the order.
			s.log.Error("downpayment settlement failed",
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
			return invoice, fmt.Errorf("%w: %v", domain.ErrSettlementFailed, err)
		}
	}

	return invoice, nil
}

// resolveSubtotal applies the defaulting rules: an explicit nonzero subtotal
// wins; otherwise a full invoice bills the order total and a down-payment
// invoice bills the order's down-payment share.
func resolveSubtotal(req domain.CreateInvoiceRequest, order orderdomain.Order) (int64, int64, error) {
	pct := int64(0)
	if req.InvoiceType == domain.InvoiceTypeDownpayment {
		pct = order.DownpaymentPercentage
	}

	if req.Subtotal != 0 {
		if req.Subtotal < 0 {
			return 0, 0, &calc.ValidationError{Field: "subtotal", Reason: "must not be negative"}
		}
		return req.Subtotal, pct, nil
	}

	if req.InvoiceType == domain.InvoiceTypeFull {
		return order.TotalAmount, 0, nil
	}

	if order.DownpaymentAmount > 0 {
		return order.DownpaymentAmount, pct, nil
	}
	totals, err := calc.ComputeOrderTotals(order.TotalAmount, pct, true)
	if err != nil {
		return 0, 0, err
	}
	return totals.DownpaymentAmount, pct, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.InvoiceListItem, error) {
	for _, status := range req.Statuses {
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	invoices, err := s.repo.List(ctx, s.db, req.Statuses)
	if err != nil {
		return nil, err
	}

	orders := map[snowflake.ID]orderdomain.Order{}
	offerings := map[snowflake.ID]string{}

	items := make([]domain.InvoiceListItem, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice == nil {
			continue
		}
		item := domain.InvoiceListItem{Invoice: *invoice}

		order, ok := orders[invoice.OrderID]
		if !ok {
			order, err = s.orders.GetByID(ctx, invoice.OrderID.String())
			if err != nil {
				if !errors.Is(err, orderdomain.ErrNotFound) {
					return nil, err
				}
				// Orphaned invoice rows still list, just without order fields.
				order = orderdomain.Order{}
			}
			orders[invoice.OrderID] = order
		}

		item.CustomerName = order.CustomerName
		item.CustomerEmail = order.CustomerEmail
		item.OrderRemainingAmount = order.RemainingAmount
		item.ServiceName = s.offeringName(ctx, offerings, order.ServiceID)

		items = append(items, item)
	}
	return items, nil
}

func (s *Service) offeringName(ctx context.Context, cache map[snowflake.ID]string, id snowflake.ID) string {
	if id == 0 {
		return ""
	}
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	offering, err := s.catalog.GetByID(ctx, id.String())
	if err == nil {
		name = offering.Name
	} else if !errors.Is(err, catalogdomain.ErrNotFound) {
		s.log.Warn("offering lookup failed",
			zap.String("service_id", id.String()),
			zap.Error(err),
		)
	}
	cache[id] = name
	return name
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (domain.Invoice, error) {
	if !status.Valid() {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if current.Status == status {
		return current, nil
	}
	if !current.Status.CanTransitionTo(status) {
		return domain.Invoice{}, domain.ErrInvalidTransition
	}

	patch := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, s.db, current.ID, patch); err != nil {
		return domain.Invoice{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Render(ctx context.Context, id string) (domain.RenderedInvoice, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.RenderedInvoice{}, err
	}

	doc, err := s.buildDocument(ctx, invoice)
	if err != nil {
		return domain.RenderedInvoice{}, err
	}

	content, err := s.renderer.RenderInvoice(ctx, doc)
	if err != nil {
		return domain.RenderedInvoice{}, err
	}
	return domain.RenderedInvoice{
		Filename: doc.Filename(),
		Content:  content,
	}, nil
}

func (s *Service) buildDocument(ctx context.Context, invoice domain.Invoice) (pdf.Document, error) {
	order, err := s.orders.GetByID(ctx, invoice.OrderID.String())
	if err != nil {
		return pdf.Document{}, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return pdf.Document{}, err
	}

	description := s.offeringName(ctx, map[snowflake.ID]string{}, order.ServiceID)
	if description == "" {
		description = "Layanan"
	}
	if invoice.IsDownpayment() {
		description += " (DP)"
	}

	return pdf.Document{
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		Customer: pdf.Customer{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
		},
		Company: pdf.Company{
			Name:      cfg.CompanyName,
			Address:   cfg.CompanyAddress,
			Phone:     cfg.CompanyPhone,
			Email:     cfg.CompanyEmail,
			Website:   cfg.CompanyWebsite,
			TaxNumber: cfg.TaxNumber,
		},
		Items: []pdf.LineItem{
			{
				Description: description,
				Quantity:    1,
				Price:       invoice.Subtotal,
				Total:       invoice.Subtotal,
			},
		},
		Subtotal:     invoice.Subtotal,
		TaxAmount:    invoice.TaxAmount,
		TotalAmount:  invoice.TotalAmount,
		Notes:        invoice.Notes,
		PaymentTerms: invoice.PaymentTerms,
	}, nil
}

func (s *Service) Send(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	order, err := s.orders.GetByID(ctx, invoice.OrderID.String())
	if err != nil {
		return domain.Invoice{}, err
	}

	rendered, err := s.Render(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	msg := email.Message{
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
		HTMLBody: fmt.Sprintf(
			"<p>Halo %s,</p><p>Invoice %s terlampir. Mohon lakukan pembayaran sebelum %s.</p>",
			order.CustomerName, invoice.InvoiceNumber, format.Date(invoice.DueDate),
		),
		Attachments: []email.Attachment{
			{
				Filename:    rendered.Filename,
				ContentType: "application/pdf",
				Content:     rendered.Content,
			},
		},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return domain.Invoice{}, err
	}

	if invoice.Status == domain.InvoiceStatusDraft {
		return s.UpdateStatus(ctx, id, domain.InvoiceStatusSent)
	}
	return invoice, nil
}
