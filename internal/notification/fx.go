package notification

import (
	"github.com/smartpemda/sitagih/internal/notification/repository"
	"github.com/smartpemda/sitagih/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
