package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/adpilot/admanager/internal/auth"
	"github.com/adpilot/admanager/internal/cache"
	"github.com/adpilot/admanager/internal/config"
	"github.com/adpilot/admanager/internal/http/handlers"
	"github.com/adpilot/admanager/internal/http/middlewares"
	"github.com/adpilot/admanager/internal/observability"
	"github.com/adpilot/admanager/internal/ratelimit"
	"github.com/adpilot/admanager/internal/repo/postgres"
)

// NewRouter wires middlewares, repositories and handlers into the gin
// engine. The rate limiter guards the credential endpoints only.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, limiter ratelimit.Limiter) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// own registry so building multiple routers (tests) never collides
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(otelgin.Middleware("admanager"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.MaxBodyBytes(cfg.HTTP.MaxBodyBytes))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		return pool.Ping(ctx)
	}
	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	// uploaded avatars
	r.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	campaignsRepo := postgres.NewCampaignsRepo(pool, prom)
	adsRepo := postgres.NewAdsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWT.Secret, cfg.JWT.TTL())
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, cfg.Upload)
	campaignsHandler := handlers.NewCampaignsHandler(campaignsRepo, cache.New(5*time.Second))
	adsHandler := handlers.NewAdsHandler(adsRepo)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON("/api/auth/update-profile"))

	authGroup := api.Group("/auth")
	{
		if limiter != nil {
			authGroup.POST("/signup", middlewares.RateLimit(limiter), authHandler.SignUp)
			authGroup.POST("/signin", middlewares.RateLimit(limiter), authHandler.SignIn)
		} else {
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
		}
		authGroup.GET("/me", authMw.RequireAuth(), authHandler.Me)
		authGroup.PUT("/update-profile", authMw.RequireAuth(), authHandler.UpdateProfile)
	}

	campaigns := api.Group("/campaigns", authMw.RequireAuth())
	{
		campaigns.POST("", campaignsHandler.CreateCampaign)
		campaigns.GET("", campaignsHandler.ListCampaigns)
		campaigns.GET("/:id", campaignsHandler.GetCampaign)
		campaigns.PUT("/:id", campaignsHandler.UpdateCampaign)
		campaigns.DELETE("/:id", campaignsHandler.DeleteCampaign)
	}

	ads := api.Group("/ads", authMw.RequireAuth())
	{
		ads.POST("", adsHandler.CreateAd)
		ads.GET("/campaign/:campaignId", adsHandler.ListAdsByCampaign)
		ads.GET("/:id", adsHandler.GetAd)
		ads.PUT("/:id", adsHandler.UpdateAd)
		ads.DELETE("/:id", adsHandler.DeleteAd)
	}

	return r
}
