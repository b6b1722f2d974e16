package content

import (
	"github.com/santaradigital/backoffice/internal/content/domain"
	"github.com/santaradigital/backoffice/internal/content/service"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("content.service",
	fx.Provide(func(db *gorm.DB) repository.Store[domain.LandingSection] {
		return repository.ProvideStore[domain.LandingSection](db)
	}),
	fx.Provide(func(db *gorm.DB) repository.Store[domain.Testimonial] {
		return repository.ProvideStore[domain.Testimonial](db)
	}),
	fx.Provide(func(db *gorm.DB) repository.Store[domain.FooterColumn] {
		return repository.ProvideStore[domain.FooterColumn](db)
	}),
	fx.Provide(service.New),
)
