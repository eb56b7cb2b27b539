// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/http/handlers"
	"wanderlust/internal/http/middleware"
	"wanderlust/internal/imagery"
)

type RouterDeps struct {
	Generator      handlers.Generator
	Catalog        handlers.PlanCatalog
	Photos         handlers.PhotoSource
	Logger         *zap.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.TraceID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	planHandler := handlers.NewPlanHandler(deps.Generator, deps.Catalog, deps.RequestTimeout, logger)
	r.POST("/api/generate-travel", planHandler.Generate)
	r.GET("/api/generate-travel", planHandler.Search)

	plans := r.Group("/api/plans")
	plans.GET("/recent", planHandler.Recent)
	plans.GET("/featured", planHandler.Featured)
	plans.GET("/popular", planHandler.Popular)
	plans.GET("/:slug", planHandler.Get)
	plans.POST("/:slug/share", planHandler.Share)

	if deps.Photos != nil {
		imageHandler := handlers.NewImageHandler(deps.Photos, logger)
		r.GET(imagery.PhotoPath+":ref", imageHandler.PlacePhoto)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", middleware.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
