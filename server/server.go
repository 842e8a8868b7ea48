package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/feed"
)

// Server exposes the current snapshot over HTTP. It only ever reads the
// store; all writes happen on the scheduler's side.
type Server struct {
	store      *feed.Store
	sched      *feed.Scheduler
	httpServer *http.Server
}

// New builds the server. metricsHandler is mounted at /metrics; pass nil to
// disable the endpoint.
func New(port int, store *feed.Store, sched *feed.Scheduler, metricsHandler http.Handler) *Server {
	s := &Server{store: store, sched: sched}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/feed", s.handleFeed)
	mux.HandleFunc("/api/health", s.handleHealth)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins listening in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()
	log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return
	}
	log.Info().Msg("HTTP server shut down")
}
