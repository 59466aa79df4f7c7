// Package server exposes the batch queue over HTTP: a small JSON API plus
// an embedded single-page UI for browsing channels and driving downloads.
package server

import (
	"context"
	"embed"
	"log"
	"net/http"
	"time"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
)

//go:embed static/index.html
var static embed.FS

// ChannelLister fetches one page of a channel's uploads.
type ChannelLister interface {
	ListChannelPage(ctx context.Context, channelURL, pageToken string) (model.ChannelPage, error)
}

// Server ties the channel lister and the queue manager to HTTP handlers.
type Server struct {
	lister  ChannelLister
	manager *queue.Manager
	logger  *log.Logger
	origins string
	baseCtx context.Context
}

func (s *Server) runContext() context.Context {
	if s.baseCtx != nil {
		return s.baseCtx
	}
	return context.Background()
}

func New(lister ChannelLister, manager *queue.Manager, logger *log.Logger, allowedOrigins string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return &Server{lister: lister, manager: manager, logger: logger, origins: allowedOrigins}
}

// Handler builds the route table wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/channel", s.handleChannel)
	mux.HandleFunc("/api/queue", s.handleQueueAdd)
	mux.HandleFunc("/api/queue/remove", s.handleQueueRemove)
	mux.HandleFunc("/api/queue/clear", s.handleQueueClear)
	mux.HandleFunc("/api/run", s.handleRun)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/", s.handleIndex)

	return s.logRequests(corsMiddleware(s.origins, mux))
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully. In-flight downloads keep running in the manager's pool
// until the process exits.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Printf("listening on http://%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
