package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"postarchive/src/domain"
	"time"
)

type ArchiveSnapshots interface {
	RenderAndPublish(ctx context.Context, creator string) (*domain.Snapshot, error)
	Latest(ctx context.Context, creator string) (*domain.Snapshot, error)
	ListCreators(ctx context.Context) ([]string, error)
	RenderAll(ctx context.Context) (*domain.RenderSummary, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server representa o servidor HTTP da API
type Server struct {
	logger           *slog.Logger
	server           *http.Server
	mux              *http.ServeMux
	port             int
	archiveSnapshots ArchiveSnapshots
	healthCheckers   []HealthChecker
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	archiveSnapshots ArchiveSnapshots,
	healthCheckers ...HealthChecker,
) *Server {
	server := &Server{
		mux:              http.NewServeMux(),
		port:             port,
		logger:           logger,
		archiveSnapshots: archiveSnapshots,
		healthCheckers:   healthCheckers,
	}

	// Renderizar arquivos grandes passa fácil dos 10s
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /v1/archives", server.ListArchives)
	server.mux.HandleFunc("GET /v1/archives/{creator}", server.GetArchive)

	// Rotas de Escritas
	server.mux.HandleFunc("POST /v1/archives/render", server.RenderAllArchives)
	server.mux.HandleFunc("POST /v1/archives/{creator}/render", server.RenderArchive)

	server.mux.HandleFunc("GET /healthz", server.Healthz)

	return server
}

// Handler expõe o mux, usado nos testes com httptest
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
