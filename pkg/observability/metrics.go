package observability

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/domain"
)

// Construction results used as the "result" label.
const (
	ResultOK               = "ok"
	ResultInvalidShape     = "invalid_shape"
	ResultTypeMismatch     = "type_mismatch"
	ResultMissingFields    = "missing_fields"
	ResultUnexpectedFields = "unexpected_fields"
	ResultUnknownStructure = "unknown_structure"
	ResultError            = "error"
)

// UnknownStructureLabel is the structure label of constructions against unregistered names.
const UnknownStructureLabel = ""

// Metrics holds the collectors fed by registry hooks.
type Metrics struct {
	Constructions *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	Registered    prometheus.Counter

	logger *slog.Logger
}

// MetricsOption defines a functional option for NewMetrics.
type MetricsOption func(*Metrics)

// WithLogger logs every construction event.
func WithLogger(logger *slog.Logger) MetricsOption {
	return func(m *Metrics) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if a collector is already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	m := &Metrics{
		Constructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typedclass_constructions_total",
				Help: "Total number of construction attempts by structure and result",
			},
			[]string{"structure", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "typedclass_construction_duration_seconds",
				Help:    "Duration of construction attempts",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"structure"},
		),
		Registered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typedclass_structures_registered_total",
				Help: "Total number of structures registered",
			},
		),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	reg.MustRegister(m.Constructions, m.Duration, m.Registered)
	return m
}

// Hooks returns registry hooks that feed the collectors.
func (m *Metrics) Hooks() class.Hooks {
	return class.Hooks{
		OnRegister: func(md *class.Metadata) {
			m.logger.Info("structure_registered",
				"structure", md.Name(),
				"fields", len(md.Params()),
			)
			m.Registered.Inc()
		},
		OnConstruct: func(e *class.ConstructEvent) {
			result := Result(e.Err)
			if e.Err != nil {
				m.logger.Info("construct_failed",
					"structure", e.Structure,
					"result", result,
					"error", e.Err,
				)
			} else {
				m.logger.Debug("construct", "structure", e.Structure)
			}
			// Unknown names come from callers; keep them out of the label space.
			if result == ResultUnknownStructure {
				m.Constructions.WithLabelValues(UnknownStructureLabel, result).Inc()
				return
			}
			m.Constructions.WithLabelValues(e.Structure, result).Inc()
			m.Duration.WithLabelValues(e.Structure).Observe(e.Duration.Seconds())
		},
	}
}

// Result classifies a construction error into a metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidArgumentShape):
		return ResultInvalidShape
	case errors.Is(err, domain.ErrTypeMismatch):
		return ResultTypeMismatch
	case errors.Is(err, domain.ErrMissingRequiredFields):
		return ResultMissingFields
	case errors.Is(err, domain.ErrUnexpectedFields):
		return ResultUnexpectedFields
	case errors.Is(err, domain.ErrUnknownStructure):
		return ResultUnknownStructure
	default:
		return ResultError
	}
}
