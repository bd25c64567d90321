// Package server exposes the loaded dataset and the calendar document
// over a REST API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binalert/bin-alert/internal/ics"
	"github.com/binalert/bin-alert/internal/provider"
)

// Server bundles router and dependencies for the REST API.
type Server struct {
	provider provider.Provider
	gen      *ics.Generator
	engine   *gin.Engine
	listen   string
}

// New constructs a server with routes and middleware.
func New(listen string, p provider.Provider) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	s := &Server{
		provider: p,
		gen:      ics.NewGenerator(),
		engine:   engine,
		listen:   listen,
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listen,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/materials", s.handleMaterials)
		v1.GET("/areas", s.handleAreas)
		v1.GET("/categories", s.handleCategories)
		v1.GET("/dates", s.handleDates)
		v1.GET("/calendar.ics", s.handleCalendar)
	}
}
