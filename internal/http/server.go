// README: API gateway; builds the gin engine and delegates to the plan services.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/http/handlers"
	"wanderlust/internal/service"
)

type ServerDeps struct {
	Pipeline       *service.Pipeline
	Catalog        *service.Catalog
	Photos         handlers.PhotoSource
	Logger         *zap.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

type Server struct {
	pipeline       *service.Pipeline
	catalog        *service.Catalog
	photos         handlers.PhotoSource
	logger         *zap.Logger
	allowedOrigins []string
	requestTimeout time.Duration
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		pipeline:       deps.Pipeline,
		catalog:        deps.Catalog,
		photos:         deps.Photos,
		logger:         logger,
		allowedOrigins: deps.AllowedOrigins,
		requestTimeout: deps.RequestTimeout,
	}
}

func (s *Server) Routes() *gin.Engine {
	return NewRouter(RouterDeps{
		Generator:      s.pipeline,
		Catalog:        s.catalog,
		Photos:         s.photos,
		Logger:         s.logger,
		AllowedOrigins: s.allowedOrigins,
		RequestTimeout: s.requestTimeout,
	})
}
