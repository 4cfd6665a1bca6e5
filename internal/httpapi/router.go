// ABOUTME: HTTP readout API server and routing
// ABOUTME: Wires handlers, logging, metrics, and graceful shutdown

package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/storage"
)

const (
	readHeaderTimeout = 10 * time.Second
	drainTimeout      = 10 * time.Second
)

// Server serves item locations and proximity readouts over HTTP.
type Server struct {
	repo   storage.Repository
	engine geo.Engine
}

// New creates a server backed by the given repository.
func New(repo storage.Repository) *Server {
	return &Server{repo: repo}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware, metricsMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/items", s.handleListItems).Methods("GET")
	r.HandleFunc("/api/items/{name}", s.handleGetItem).Methods("GET")
	r.HandleFunc("/api/items/{name}/proximity", s.handleProximity).Methods("GET")
	r.HandleFunc("/api/items/{name}/track.geojson", s.handleTrack).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

// ListenAndServe runs the server until the context is cancelled, then drains
// in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.WithFields(log.Fields{"addr": addr}).Info("http server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// loggingMiddleware emits one structured line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"remote":   r.RemoteAddr,
		}).Info("request")
	})
}
