package recommend

import (
	"io"
	"log/slog"
)

// ============================================================================
// ENGINE OPTIONS: Functional options for NewEngine()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger  *slog.Logger
	Metrics *Metrics // nil disables instrumentation
	Explain bool     // attach reason text to each recommendation
}

// WithLogger sets the logger used for debug traces of each request.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMetrics records every request into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.Metrics = m
	}
}

// WithoutReasons skips reason generation; Recommendation.Reason stays empty.
func WithoutReasons() Option {
	return func(c *config) {
		c.Explain = false
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Explain: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
