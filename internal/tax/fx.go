package tax

import (
	"github.com/smartpemda/sitagih/internal/tax/repository"
	"github.com/smartpemda/sitagih/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
