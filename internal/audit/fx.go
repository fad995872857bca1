package audit

import (
	"github.com/smartpemda/sitagih/internal/audit/repository"
	"github.com/smartpemda/sitagih/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
