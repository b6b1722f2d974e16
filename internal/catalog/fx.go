package catalog

import (
	"github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/internal/catalog/service"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("catalog.service",
	fx.Provide(func(db *gorm.DB) repository.Store[domain.Offering] {
		return repository.ProvideStore[domain.Offering](db)
	}),
	fx.Provide(service.New),
)
