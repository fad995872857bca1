package claim

import (
	"github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/claim/repository"
	"github.com/smartpemda/sitagih/internal/claim/service"
	"github.com/smartpemda/sitagih/internal/numbering"
	"go.uber.org/fx"
)

var Module = fx.Module("claim.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(func(repo domain.Repository) numbering.Source { return repo }),
	fx.Provide(service.NewService),
)
