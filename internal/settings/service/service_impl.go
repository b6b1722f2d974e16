package service

import (
	"context"
	"strings"
	"time"

	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/settings/domain"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Store  repository.Store[domain.Settings]
	DocCfg *config.DocumentConfigHolder
}

type Service struct {
	log    *zap.Logger
	store  repository.Store[domain.Settings]
	docCfg *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("settings.service"),
		store:  p.Store,
		docCfg: p.DocCfg,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	row, err := s.store.FindOne(ctx, &domain.Settings{ID: domain.SettingsRowID})
	if err != nil {
		return domain.Settings{}, err
	}

	settings := domain.Settings{ID: domain.SettingsRowID, SMTPPort: 587}
	if row != nil {
		settings = *row
	}
	return s.applyDefaults(settings), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	if req.SMTPPort != nil && (*req.SMTPPort < 1 || *req.SMTPPort > 65_535) {
		return domain.Settings{}, domain.ErrInvalidSMTPPort
	}
	if req.TaxRateBps != nil && (*req.TaxRateBps < 0 || *req.TaxRateBps > 10_000) {
		return domain.Settings{}, domain.ErrInvalidTaxRate
	}

	row, err := s.store.FindOne(ctx, &domain.Settings{ID: domain.SettingsRowID})
	if err != nil {
		return domain.Settings{}, err
	}

	exists := row != nil
	settings := domain.Settings{ID: domain.SettingsRowID, SMTPPort: 587}
	if exists {
		settings = *row
	}

	applyPatch(&settings, req)
	settings.UpdatedAt = time.Now().UTC()

	if exists {
		if err := s.store.Save(ctx, &settings); err != nil {
			return domain.Settings{}, err
		}
	} else {
		if err := s.store.Create(ctx, &settings); err != nil {
			return domain.Settings{}, err
		}
	}
	return s.applyDefaults(settings), nil
}

// applyDefaults backfills unset invoice fields from the document config so
// callers always see usable values. An explicitly stored zero tax rate
// counts as set and is kept.
func (s *Service) applyDefaults(settings domain.Settings) domain.Settings {
	doc := s.docCfg.Current()
	if strings.TrimSpace(settings.InvoiceNumberTemplate) == "" {
		settings.InvoiceNumberTemplate = doc.NumberTemplate
	}
	if strings.TrimSpace(settings.DefaultPaymentTerms) == "" {
		settings.DefaultPaymentTerms = doc.PaymentTerms
	}
	if settings.TaxRateBps == nil {
		rate := doc.TaxRateBps
		settings.TaxRateBps = &rate
	}
	return settings
}

func applyPatch(settings *domain.Settings, req domain.UpdateSettingsRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&settings.SMTPHost, req.SMTPHost)
	if req.SMTPPort != nil {
		settings.SMTPPort = *req.SMTPPort
	}
	setString(&settings.SMTPUsername, req.SMTPUsername)
	if req.SMTPPassword != nil {
		settings.SMTPPassword = *req.SMTPPassword
	}
	setString(&settings.FromEmail, req.FromEmail)
	setString(&settings.FromName, req.FromName)
	if req.EmailEnabled != nil {
		settings.EmailEnabled = *req.EmailEnabled
	}

	setString(&settings.CompanyName, req.CompanyName)
	setString(&settings.CompanyAddress, req.CompanyAddress)
	setString(&settings.CompanyPhone, req.CompanyPhone)
	setString(&settings.CompanyEmail, req.CompanyEmail)
	setString(&settings.CompanyWebsite, req.CompanyWebsite)
	setString(&settings.TaxNumber, req.TaxNumber)

	setString(&settings.InvoiceNumberTemplate, req.InvoiceNumberTemplate)
	setString(&settings.DefaultPaymentTerms, req.DefaultPaymentTerms)
	if req.TaxRateBps != nil {
		rate := *req.TaxRateBps
		settings.TaxRateBps = &rate
	}
}
