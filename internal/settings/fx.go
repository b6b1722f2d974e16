package settings

import (
	"github.com/santaradigital/backoffice/internal/settings/domain"
	"github.com/santaradigital/backoffice/internal/settings/service"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("settings.service",
	fx.Provide(func(db *gorm.DB) repository.Store[domain.Settings] {
		return repository.ProvideStore[domain.Settings](db)
	}),
	fx.Provide(service.New),
)
