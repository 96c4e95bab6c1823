package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mineskin/skinbot/internal/config"
)

// Server is the inbound webhook HTTP listener.
type Server struct {
	cfg        config.ServerConfig
	httpServer *http.Server
}

// NewServer builds the HTTP server with the handler's routes registered.
func NewServer(cfg config.ServerConfig, h *Handler) *Server {
	mux := http.NewServeMux()
	h.Register(mux)

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler: mux,
		},
	}
}

// Start listens and serves until Shutdown. Blocks.
func (s *Server) Start() error {
	slog.Info("webhook server starting", "addr", s.httpServer.Addr, "path", s.cfg.BasePath)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
