package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rvaldiviezo/clinica-api/internal/handler"
	"github.com/rvaldiviezo/clinica-api/internal/middleware"
	"github.com/rvaldiviezo/clinica-api/pkg/metrics"
)

// Handler is anything that mounts its routes on the protected API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AuthMiddleware)
}

// PublicHandler additionally mounts routes outside the auth wall.
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Config struct {
	RateRPS   float64
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	authMW   *middleware.AuthMiddleware
	healthH  *handler.HealthHandler
	publicH  []PublicHandler
	handlers []Handler
}

func New(cfg Config, m *metrics.Metrics, authMW *middleware.AuthMiddleware,
	healthH *handler.HealthHandler, publicH []PublicHandler, handlers []Handler) *Router {

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
		middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst).RateLimit(),
	)

	return &Router{
		engine:   engine,
		authMW:   authMW,
		healthH:  healthH,
		publicH:  publicH,
		handlers: handlers,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/health/live", r.healthH.Health)
	r.engine.GET("/health/ready", r.healthH.Ready)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	for _, h := range r.publicH {
		h.RegisterPublicRoutes(api)
	}

	protected := api.Group("", r.authMW.Authenticate())
	for _, h := range r.publicH {
		h.RegisterRoutes(protected, r.authMW)
	}
	for _, h := range r.handlers {
		h.RegisterRoutes(protected, r.authMW)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
