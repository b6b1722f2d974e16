package order

import (
	"github.com/santaradigital/backoffice/internal/order/repository"
	"github.com/santaradigital/backoffice/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
