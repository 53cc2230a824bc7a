package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexmenard/e2ee-api/config"
	"github.com/alexmenard/e2ee-api/internal/conversations"
	"github.com/alexmenard/e2ee-api/internal/identity"
	"github.com/alexmenard/e2ee-api/internal/keys"
	"github.com/alexmenard/e2ee-api/internal/messaging"
	"github.com/alexmenard/e2ee-api/pkg/errors"
	"github.com/alexmenard/e2ee-api/pkg/logger"
	"github.com/alexmenard/e2ee-api/pkg/ratelimit"
)

type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     logger.Logger

	identityUC      identity.Usecase
	keysUC          keys.Usecase
	messagingUC     messaging.Usecase
	conversationsUC conversations.Usecase

	limiter *ratelimit.KeyLimiter
	metrics *metrics
}

type Deps struct {
	Identity      identity.Usecase
	Keys          keys.Usecase
	Messaging     messaging.Usecase
	Conversations conversations.Usecase
	Registry      *prometheus.Registry
}

func NewServer(cfg config.Config, log logger.Logger, deps Deps) *Server {
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		mux:             mux,
		logger:          log,
		identityUC:      deps.Identity,
		keysUC:          deps.Keys,
		messagingUC:     deps.Messaging,
		conversationsUC: deps.Conversations,
		limiter:         ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute),
		metrics:         newMetrics(registry),
	}

	s.routes(registry)
	return s
}

func (s *Server) routes(registry *prometheus.Registry) {
	route := func(pattern, name string, h http.HandlerFunc) {
		s.mux.HandleFunc(pattern, s.withMetrics(name, h))
	}

	route("GET /health", "health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Unauthenticated surface, rate limited per client IP.
	route("POST /auth/register", "auth_register", s.withRateLimit(s.handleRegister))
	route("POST /auth/login", "auth_login", s.withRateLimit(s.handleLogin))
	route("GET /keys/bundle", "keys_bundle", s.withRateLimit(s.handleBundle))
	route("GET /users/devices", "users_devices", s.handleUserDevices)

	// Session-scoped surface.
	route("GET /me", "me", s.withAuth(s.handleMe))
	route("POST /devices/register", "devices_register", s.withAuth(s.handleRegisterDevice))
	route("POST /keys/upload", "keys_upload", s.withAuth(s.handleUploadKeys))
	route("GET /keys/status", "keys_status", s.withAuth(s.handleKeysStatus))
	route("POST /messages/send", "messages_send", s.withAuth(s.handleSend))
	route("POST /messages/send-to-user", "messages_send_to_user", s.withAuth(s.handleSendToUser))
	route("GET /messages/inbox", "messages_inbox", s.withAuth(s.handleInbox))
	route("GET /messages/with", "messages_with", s.withAuth(s.handleMessagesWith))
	route("GET /messages/with-user", "messages_with_user", s.withAuth(s.handleMessagesWithUser))
	route("POST /messages/ack", "messages_ack", s.withAuth(s.handleAck))
	route("GET /conversations", "conversations_list", s.withAuth(s.handleConversations))
	route("POST /conversations/read", "conversations_read", s.withAuth(s.handleMarkConversationRead))
}

// Handler exposes the routed mux, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled, then drains with a shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
