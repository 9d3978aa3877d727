package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/class"
	"github.com/aretw0/typedclass/pkg/domain"
	"github.com/aretw0/typedclass/pkg/manifest"
	"github.com/aretw0/typedclass/pkg/observability"
	"github.com/aretw0/typedclass/pkg/openapi"
)

// MaxBodySize bounds the documents accepted by the instances endpoint.
const MaxBodySize = 1 << 20

// Server exposes a structure registry over HTTP.
type Server struct {
	Registry *class.Registry
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	Version  string
}

// Option defines a functional option for NewHandler.
type Option func(*Server)

// WithGatherer serves the gathered metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used to report request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithVersion sets the version reported by GET /info and the OpenAPI document.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg *class.Registry, opts ...Option) http.Handler {
	s := &Server{
		Registry: reg,
		Logger:   logging.NewNop(),
		Version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.json", s.GetOpenAPI)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Route("/structures", func(r chi.Router) {
		r.Get("/", s.ListStructures)
		r.Get("/{name}", s.GetStructure)
		r.Get("/{name}/schema", s.GetSchema)
		r.Post("/{name}/instances", s.CreateInstance)
	})

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>typedclass structures</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// FieldView is the JSON description of a field.
type FieldView struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Required   bool   `json:"required"`
	HasDefault bool   `json:"has_default"`
	Default    any    `json:"default,omitempty"`
}

// StructureView is the JSON description of a structure.
type StructureView struct {
	Name    string       `json:"name"`
	Extends string       `json:"extends,omitempty"`
	Config  class.Config `json:"config"`
	Fields  []FieldView  `json:"fields"`
}

// InstanceView is the JSON body of a successful construction.
type InstanceView struct {
	Structure string         `json:"structure"`
	Values    map[string]any `json:"values"`
	Repr      string         `json:"repr"`
}

// ErrorView is the JSON body of a failed request.
type ErrorView struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Describe builds the JSON description of a structure.
func Describe(md *class.Metadata) StructureView {
	v := StructureView{
		Name:   md.Name(),
		Config: md.Config(),
		Fields: []FieldView{},
	}
	if p := md.Parent(); p != nil {
		v.Extends = p.Name()
	}
	for _, f := range md.Fields() {
		typ := "Any"
		if f.Constraint != nil {
			typ = f.Constraint.String()
		}
		v.Fields = append(v.Fields, FieldView{
			Name:       f.Name,
			Type:       typ,
			Required:   f.Required,
			HasDefault: f.HasDefault,
			Default:    f.Default,
		})
	}
	return v
}

// ListStructures handles the GET /structures request.
func (s *Server) ListStructures(w http.ResponseWriter, r *http.Request) {
	views := []StructureView{}
	for _, name := range s.Registry.Names() {
		if md, ok := s.Registry.Lookup(name); ok {
			views = append(views, Describe(md))
		}
	}
	s.writeJSON(w, http.StatusOK, views)
}

// GetStructure handles the GET /structures/{name} request.
func (s *Server) GetStructure(w http.ResponseWriter, r *http.Request) {
	md, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, Describe(md))
}

// GetSchema handles the GET /structures/{name}/schema request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	md, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, openapi.Schema(md))
}

// CreateInstance handles the POST /structures/{name}/instances request.
// The body is a YAML or JSON document.
func (s *Server) CreateInstance(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.Logger.Warn("CreateInstance: Body read failed", "structure", name, "error", err)
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := manifest.DecodeDocument(data)
	if err != nil {
		s.Logger.Warn("CreateInstance: Invalid request body", "structure", name, "error", err)
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	inst, err := s.Registry.Construct(name, doc)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnknownStructure):
		s.writeError(w, http.StatusNotFound, err)
		return
	default:
		s.Logger.Debug("CreateInstance: Validation failed", "structure", name, "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.writeJSON(w, http.StatusOK, InstanceView{
		Structure: name,
		Values:    inst.Values(),
		Repr:      inst.String(),
	})
}

// GetOpenAPI handles the GET /openapi.json request.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, openapi.Document(s.Registry, "typedclass structures", s.Version))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":        "typedclass-http",
		"version":    s.Version,
		"structures": len(s.Registry.Names()),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*class.Metadata, bool) {
	name := chi.URLParam(r, "name")
	md, ok := s.Registry.Lookup(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrUnknownStructure, name))
	}
	return md, ok
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorView{Error: err.Error(), Kind: observability.Result(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
