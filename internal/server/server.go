// Package server exposes a loaded dataset and the recommendation engine over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/config"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/recommend"
)

const shutdownTimeout = 10 * time.Second

// Server answers catalog, column, recommendation and chart queries for one dataset.
// The dataset is read-only after New, so handlers run concurrently without locking.
type Server struct {
	ds       frame.Dataset
	engine   *recommend.Engine
	registry *prometheus.Registry
	requests *prometheus.CounterVec // nil when metrics are disabled
	decoder  *schema.Decoder
	logger   *slog.Logger
}

// New creates a Server over ds. A nil logger uses slog.Default().
func New(ds frame.Dataset, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		ds:       ds,
		registry: prometheus.NewRegistry(),
		decoder:  decoder,
		logger:   logger,
	}

	opts := []recommend.Option{recommend.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		opts = append(opts, recommend.WithMetrics(recommend.NewMetrics(s.registry, cfg.Metrics.Namespace)))
		s.requests = promauto.With(s.registry).NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Metrics.Namespace,
			Name:      "http_requests_total",
			Help:      "The total number of API requests by route and status code",
		}, []string{"route", "code"})
	}
	s.engine = recommend.NewEngine(opts...)
	return s
}

// Registry returns the registry the server's metrics are registered on.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog", s.jsonHandler("catalog", s.handleCatalog))
	mux.HandleFunc("/api/columns", s.jsonHandler("columns", s.handleColumns))
	mux.HandleFunc("/api/recommend", s.jsonHandler("recommend", s.handleRecommend))
	mux.HandleFunc("/api/chart", s.jsonHandler("chart", s.handleChart))
	mux.HandleFunc("/api/describe", s.jsonHandler("describe", s.handleDescribe))
	mux.HandleFunc("/api/snapshot", s.jsonHandler("snapshot", s.handleSnapshot))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeoutDuration(),
		ReadHeaderTimeout: cfg.ReadTimeoutDuration(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.Wrap(err, errors.ErrTypeInternal, "server listen failed")
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrTypeInternal, "graceful shutdown failed")
	}
	s.logger.Info("shutdown complete")
	return nil
}

// ============================================================================
// RESPONSE HELPERS
// ============================================================================

type errorResponse struct {
	Error       string   `json:"error"`
	Type        string   `json:"type"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// jsonHandler adapts fn to a GET-only JSON endpoint with CORS headers and
// per-route request counting.
func (s *Server) jsonHandler(route string, fn func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			respondToOptions(w, r)
			s.count(route, http.StatusAccepted)
			return
		}
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		var (
			body   any
			status = http.StatusOK
			err    error
		)
		if r.Method != http.MethodGet {
			status = http.StatusMethodNotAllowed
			body = errorResponse{Error: "method not allowed", Type: string(errors.ErrTypeValidation)}
		} else if body, err = fn(r); err != nil {
			status = errors.HTTPStatus(err)
			body = errorResponse{
				Error:       err.Error(),
				Type:        string(errors.GetType(err)),
				Suggestions: errors.GetSuggestions(err),
			}
			s.logger.Debug("request failed",
				slog.String("route", route),
				slog.Int("status", status),
				slog.String("error", err.Error()))
		}

		s.writeJSON(w, status, body)
		s.count(route, status)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response","type":"internal"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write response", slog.String("error", err.Error()))
	}
}

func (s *Server) count(route string, status int) {
	if s.requests != nil {
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
}

func respondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
	}
	w.WriteHeader(http.StatusAccepted)
}
