// Package server exposes the transaction engine over HTTP: a JSON submit
// endpoint, ledger entry queries, and a websocket event feed.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slopestore/slopestored/internal/config"
	"github.com/slopestore/slopestored/internal/core/tx"
	"github.com/slopestore/slopestored/internal/storage/ledgerstore"
)

// Server serves the marketplace API for one engine instance.
type Server struct {
	cfg    *config.Config
	engine *tx.Engine

	// store is the durable view behind the engine; nil in standalone mode
	// where state lives in memory only.
	store *ledgerstore.Store

	httpServer *http.Server
}

// New creates a Server for the engine. store may be nil (standalone).
func New(cfg *config.Config, engine *tx.Engine, store *ledgerstore.Store) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		store:  store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /tx", s.handleSubmit)
	mux.HandleFunc("GET /entry", s.handleEntry)
	mux.HandleFunc("GET /ws", s.handleWebsocket)

	addr := net.JoinHostPort(cfg.Server.IP, strconv.Itoa(cfg.Server.Port))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
