package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartpemda/sitagih/internal/audit"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	"github.com/smartpemda/sitagih/internal/claim"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/config"
	"github.com/smartpemda/sitagih/internal/notification"
	notificationdomain "github.com/smartpemda/sitagih/internal/notification/domain"
	"github.com/smartpemda/sitagih/internal/numbering"
	"github.com/smartpemda/sitagih/internal/observability"
	obsmiddleware "github.com/smartpemda/sitagih/internal/observability/logger"
	obsmetrics "github.com/smartpemda/sitagih/internal/observability/metrics"
	"github.com/smartpemda/sitagih/internal/tax"
	taxdomain "github.com/smartpemda/sitagih/internal/tax/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	numbering.Module,
	claim.Module,
	tax.Module,
	audit.Module,
	notification.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	genID           *snowflake.Node
	claimSvc        claimdomain.Service
	taxSvc          taxdomain.Service
	auditSvc        auditdomain.Service
	notificationSvc notificationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	GenID           *snowflake.Node
	ClaimSvc        claimdomain.Service
	TaxSvc          taxdomain.Service
	AuditSvc        auditdomain.Service
	NotificationSvc notificationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		genID:           p.GenID,
		claimSvc:        p.ClaimSvc,
		taxSvc:          p.TaxSvc,
		auditSvc:        p.AuditSvc,
		notificationSvc: p.NotificationSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")
	v1.Use(s.ActorContext())

	claims := v1.Group("/claims")
	claims.POST("", s.CreateClaim)
	claims.GET("", s.ListClaims)
	claims.GET("/:id", s.GetClaim)
	claims.POST("/:id/register", s.RegisterClaim)
	claims.POST("/:id/verify-forward", s.VerifyForward)
	claims.POST("/:id/verify-return", s.VerifyReturn)
	claims.POST("/:id/correct", s.CorrectClaim)
	claims.POST("/:id/resubmit", s.ResubmitClaim)
	claims.POST("/:id/sp2d", s.RegisterSP2D)
	claims.POST("/:id/lock", s.LockClaim)
	claims.POST("/:id/unlock", s.UnlockClaim)
	claims.PUT("/:id/taxes", s.ReplaceTaxEntries)
	claims.GET("/:id/taxes", s.ListTaxEntries)

	v1.GET("/tax-types", s.ListTaxTypes)
	v1.GET("/audit-events", s.ListAuditEvents)
	v1.GET("/notifications", s.ListNotifications)
	v1.POST("/notifications/:id/read", s.MarkNotificationRead)
}
