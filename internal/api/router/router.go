package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/api/handler"
	"github.com/Joechristian9/SituationalReport-sub000/internal/api/middleware"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/metrics"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/redis"
)

// ReadinessCheck one dependency probed by /ready
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps everything the router wires besides the handlers.
// Redis and the metrics gatherer are optional.
type Deps struct {
	JWT       *jwt.Manager
	Redis     *redis.Client
	Gatherer  prometheus.Gatherer
	Metrics   *metrics.Metrics
	Readiness []ReadinessCheck
	Logger    *zap.Logger
}

// Setup builds the Gin engine
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// a nil *redis.Client must not become a non-nil interface
	var (
		revoked middleware.RevocationChecker
		limiter middleware.RateLimiter
	)
	if deps.Redis != nil {
		revoked = deps.Redis
		limiter = deps.Redis
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMiB << 20))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", readiness(deps.Readiness))

	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	admin := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// unauthenticated
		v1.POST("/auth/login",
			middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginWindow),
			h.Auth.Login,
		)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.JWT, revoked))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			users := authorized.Group("/users", admin)
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
			}

			typhoons := authorized.Group("/typhoons")
			{
				typhoons.GET("", h.Typhoon.ListTyphoons)
				typhoons.GET("/active", h.Typhoon.GetActive)
				typhoons.GET("/:id", h.Typhoon.GetTyphoon)
				typhoons.GET("/:id/report", h.Typhoon.DownloadReport)
				typhoons.GET("/:id/export", h.Typhoon.ExportTyphoon)
				typhoons.POST("", admin, h.Typhoon.CreateTyphoon)
				typhoons.PUT("/:id", admin, h.Typhoon.UpdateTyphoon)
				typhoons.POST("/:id/pause", admin, h.Typhoon.PauseTyphoon)
				typhoons.POST("/:id/resume", admin, h.Typhoon.ResumeTyphoon)
				typhoons.POST("/:id/end", admin, h.Typhoon.EndTyphoon)
				typhoons.POST("/:id/report", admin, h.Typhoon.RegenerateReport)
				typhoons.DELETE("/:id", admin, h.Typhoon.DeleteTyphoon)
			}

			// data entry is open to every role
			reports := authorized.Group("/reports")
			{
				reports.GET("", h.Report.Catalog)
				reports.GET("/:entity", h.Report.ListRows)
				reports.POST("/:entity", h.Report.BulkSubmit)
				reports.GET("/:entity/:id", h.Report.GetRow)
				reports.PUT("/:entity/:id", h.Report.UpdateRow)
			}

			authorized.GET("/modifications/:model", h.Modification.History)

			snapshots := authorized.Group("/snapshots")
			{
				snapshots.GET("/typhoons/:id", h.Snapshot.TyphoonSnapshot)
				snapshots.GET("/years/:year", h.Snapshot.YearSnapshot)
				snapshots.GET("/years/:year/pdf", h.Snapshot.YearReport)
				snapshots.GET("/years/:year/export", h.Snapshot.ExportYear)
			}

			comms := authorized.Group("/communication-services")
			{
				comms.GET("", h.CommunicationService.List)
				comms.POST("", admin, h.CommunicationService.Create)
				comms.PUT("/:id", admin, h.CommunicationService.Update)
			}
		}
	}

	return r
}

func readiness(checks []ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		for _, chk := range checks {
			if err := chk.Check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"check":  chk.Name,
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
