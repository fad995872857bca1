package migration

import (
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	notificationdomain "github.com/smartpemda/sitagih/internal/notification/domain"
	taxdomain "github.com/smartpemda/sitagih/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
		// Versioned SQL migrations target postgres. Dev and test runs on
		// sqlite fall back to schema sync from the models.
		if conn.Dialector.Name() != "postgres" {
			log.Named("migrations").Info("non-postgres dialect, syncing schema from models",
				zap.String("dialect", conn.Dialector.Name()),
			)
			return conn.AutoMigrate(
				&claimdomain.Claim{},
				&taxdomain.TaxEntry{},
				&auditdomain.AuditEvent{},
				&notificationdomain.Notification{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
