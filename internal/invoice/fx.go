package invoice

import (
	"github.com/santaradigital/backoffice/internal/invoice/repository"
	"github.com/santaradigital/backoffice/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
