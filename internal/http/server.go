// README: API gateway; registers routes and delegates to services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/session"
	"wayfarer/internal/trip"
)

type ServerDeps struct {
	Planner  *trip.Planner
	Sessions *session.Service
	Limiter  *middleware.RateLimiter
}

type Server struct {
	planner  *trip.Planner
	sessions *session.Service
	limiter  *middleware.RateLimiter
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		planner:  deps.Planner,
		sessions: deps.Sessions,
		limiter:  deps.Limiter,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.Recovery(), middleware.Logging())

	// Wrong-method requests must answer 405, not 404.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	generateHandler := handlers.NewGenerateHandler(s.planner)
	planHandler := handlers.NewPlanHandler(s.planner, s.sessions)

	generate := engine.Group("/api")
	if s.limiter != nil {
		generate.Use(s.limiter.Limit())
	}
	generate.POST("/generate", generateHandler.Generate)
	generate.POST("/plan", planHandler.Create)
	generate.POST("/plan/:id/regenerate", planHandler.Regenerate)

	api := engine.Group("/api")
	api.GET("/plan/:id", planHandler.Get)
	api.POST("/plan/:id/edit", planHandler.BeginEdit)
	api.PUT("/plan/:id/draft", planHandler.UpdateDraft)
	api.POST("/plan/:id/save", planHandler.SaveEdit)
	api.POST("/plan/:id/cancel", planHandler.CancelEdit)
	api.GET("/plan/:id/export", planHandler.Export)

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return engine
}
