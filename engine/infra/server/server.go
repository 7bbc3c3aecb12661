// Package server wires the HTTP surface of the annotation service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Keith9922/Ketcher-demo/engine/infra/monitoring"
	"github.com/Keith9922/Ketcher-demo/engine/infra/server/appstate"
	"github.com/Keith9922/Ketcher-demo/pkg/config"
	"github.com/Keith9922/Ketcher-demo/pkg/logger"
)

const (
	serverShutdownTimeout = 5 * time.Second
	httpReadTimeout       = 15 * time.Second
	httpWriteTimeout      = 15 * time.Second
	httpIdleTimeout       = 60 * time.Second
)

type Server struct {
	cfg        *config.Config
	state      *appstate.State
	monitoring *monitoring.Service
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg *config.Config, state *appstate.State) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		state:      state,
		monitoring: state.Monitoring,
	}
	if err := s.buildRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) buildRouter() error {
	if s.cfg.Runtime.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if s.monitoring != nil {
		r.Use(s.monitoring.Middleware())
	}
	r.Use(requestLogger())
	r.Use(corsMiddleware(s.cfg.Server.CORSAllowedOrigins))
	r.Use(appstate.StateMiddleware(s.state))
	if s.monitoring != nil {
		r.GET("/metrics", gin.WrapH(s.monitoring.Handler()))
	}
	s.registerRoutes(r)
	s.router = r
	return nil
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// newHTTPServer builds the listener with the configured request timeout;
// the defaults only apply when the config leaves it unset.
func (s *Server) newHTTPServer(addr string) *http.Server {
	readTimeout, writeTimeout := httpReadTimeout, httpWriteTimeout
	if t := s.cfg.Server.Timeout; t > 0 {
		readTimeout, writeTimeout = t, t
	}
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  httpIdleTimeout,
	}
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = s.newHTTPServer(addr)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", addr, "environment", s.cfg.Runtime.Environment)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
