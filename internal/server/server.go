package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	config   *Config
	server   *http.Server
	services *Services
}

func New(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	services, err := NewServices(config)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:   config,
		services: services,
		server: &http.Server{
			Addr:    config.HTTP.Addr,
			Handler: SetupRoutes(services, config),
		},
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("docsync server start")
	defer slog.Info("docsync server stop")

	if err := s.services.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	go s.services.Feed.Run(ctx)

	go func() {
		if err := s.runHTTPServer(); err != nil && err != http.ErrServerClosed {
			slog.Error("server start error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("docsync shutdown signal")
	if err := s.Stop(ctx); err != nil {
		slog.Error("docsync shutdown error", "error", err)
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	// stop accepting work, then drain
	s.services.Runner.Cancel()
	s.services.Feed.Shutdown(shutdownCtx)

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.services.Shutdown(shutdownCtx)
}

func (s *Server) runHTTPServer() error {
	if s.config.HTTP.CertFile != "" && s.config.HTTP.KeyFile != "" {
		slog.Info("server start tls", "addr", s.config.HTTP.Addr)
		return s.server.ListenAndServeTLS(s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	}
	slog.Info("server start http", "addr", s.config.HTTP.Addr)
	return s.server.ListenAndServe()
}
