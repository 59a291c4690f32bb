package httpserver

import (
	"context"
	"net/http"

	"inventory-admin/internal/application"
)

// Server holds the handlers' collaborators.
type Server struct {
	svc     *application.AdminService
	idem    application.IdempotencyStore
	ping    func(ctx context.Context) error
	metrics http.Handler
}

func NewServer(svc *application.AdminService, idem application.IdempotencyStore) *Server {
	if idem == nil {
		idem = application.NoopIdempotency{}
	}
	return &Server{svc: svc, idem: idem}
}

// SetReadyCheck installs the /readyz check.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

// SetMetricsHandler mounts h on /metrics.
func (s *Server) SetMetricsHandler(h http.Handler) { s.metrics = h }
