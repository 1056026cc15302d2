// Package router assembles the HTTP routes.
package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	authhandler "shop_backend/internal/feature/auth/transport/handler"
	platformhandler "shop_backend/internal/platform/http/handler"
	"shop_backend/internal/platform/http/middleware"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/metrics"
	"shop_backend/internal/platform/ratelimit"
)

// Deps holds everything the routes need.
type Deps struct {
	Auth     *authhandler.AuthHandler
	Users    *authhandler.UserHandler
	Verifier jwtmw.TokenVerifier
	// Revocations may be nil, which disables the revocation check.
	Revocations jwtmw.RevocationChecker
	// LoginLimiter may be nil, which disables throttling.
	LoginLimiter *ratelimit.Limiter
	// DB may be nil, which makes /healthz skip the database ping.
	DB platformhandler.Pinger
	// Metrics may be nil, which disables /metrics and request instrumentation.
	Metrics *metrics.Prom
	// ServiceName enables otelgin spans when non-empty.
	ServiceName    string
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if d.ServiceName != "" {
		r.Use(otelgin.Middleware(d.ServiceName))
	}
	r.Use(middleware.RequestID(), middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.GinHandleMiddleware())
	}
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	// Public
	health := platformhandler.Health(d.DB)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	public := api.Group("/auth")
	var throttle []gin.HandlerFunc
	if d.LoginLimiter != nil {
		throttle = append(throttle, d.LoginLimiter.Middleware())
	}
	public.POST("/register", chain(throttle, d.Auth.Signup)...)
	login := throttle
	if d.Metrics != nil {
		login = append([]gin.HandlerFunc{d.Metrics.ObserveLogin()}, throttle...)
	}
	public.POST("/login", chain(login, d.Auth.Login)...)

	// Authenticated
	protected := api.Group("/")
	protected.Use(jwtmw.AuthRequired(d.Verifier, d.Revocations))
	{
		protected.POST("/auth/logout", d.Auth.Logout)
		protected.GET("/auth/me", d.Auth.Me)

		users := protected.Group("/users")
		users.GET("", jwtmw.RequireAdmin(), d.Users.List)
		users.POST("", jwtmw.RequireAdmin(), d.Users.Create)
		users.GET("/:id", d.Users.Get)
		users.PUT("/:id", d.Users.Update)
		users.DELETE("/:id", jwtmw.RequireAdmin(), d.Users.Delete)
	}

	return r
}

func chain(pre []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(pre)+1)
	return append(append(out, pre...), h)
}

// corsConfig admits the listed origins, or any origin when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	return cfg
}
