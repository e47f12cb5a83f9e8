// Package server exposes graph generation over HTTP.
//
// Routes:
//
//	GET  /v1/models            list models with their parameters
//	POST /v1/generate/{model}  generate a graph and return it
//	GET  /healthz              liveness probe
//
// A generate request body carries pipeline options as JSON; the model in
// the path wins over a model in the body. The response format is chosen
// with ?format=json|dot|svg (default json). Graphs are materialized in a
// memory sink, so the server caps the node count with MaxNodes and the
// edge count with MaxEdges. Both caps are checked before the parameters
// are validated.
package server

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/graph"
	"github.com/matzehuels/synthgraph/pkg/model"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// Request size limits.
const (
	DefaultMaxNodes = 100_000
	DefaultMaxEdges = 1_000_000
)

// maxBodyBytes bounds the request body.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	Runner   *pipeline.Runner
	Logger   *log.Logger
	MaxNodes int
	MaxEdges int64
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{Runner: runner, Logger: logger, MaxNodes: DefaultMaxNodes, MaxEdges: DefaultMaxEdges}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/models", s.listModels)
		r.Post("/generate/{model}", s.generate)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) listModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.Catalog())
}

// GenerateResponse is the JSON body of a successful generate request.
type GenerateResponse struct {
	RunID    string      `json:"run_id"`
	Model    model.Model `json:"model"`
	Nodes    int         `json:"nodes"`
	Edges    int         `json:"edges"`
	Seed     uint64      `json:"seed"`
	CacheHit bool        `json:"cache_hit"`
	Graph    graph.Graph `json:"graph"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if r.ContentLength != 0 {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil && err != io.EOF {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}
	opts.Model = chi.URLParam(r, "model")
	opts.Logger = s.Logger

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkLimits(&opts); err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	mem := sink.NewMemory()
	defer mem.Close()
	res, err := s.Runner.Execute(r.Context(), opts, mem)
	if err != nil {
		writeError(w, err)
		return
	}
	runID := uuid.NewString()
	w.Header().Set("X-Run-ID", runID)

	g := mem.Graph()
	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, GenerateResponse{
			RunID:    runID,
			Model:    res.Model,
			Nodes:    res.Nodes,
			Edges:    res.Edges,
			Seed:     opts.Seed,
			CacheHit: res.CacheHit,
			Graph:    g,
		})
		return
	}

	data, err := s.Runner.Render(r.Context(), g, pipeline.RenderOptions{
		Format: format,
		Engine: r.URL.Query().Get("engine"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// checkLimits resolves the model and its defaults and rejects requests
// whose node or edge count exceeds the server limits. It runs before
// validation, which is quadratic for degree sequences.
func (s *Server) checkLimits(opts *pipeline.Options) error {
	m, err := model.ParseModel(opts.Model)
	if err != nil {
		return err
	}
	opts.Model = string(m)
	opts.SetModelDefaults()

	if n := opts.NodeCount(); n > s.MaxNodes {
		return errors.New(errors.ErrCodeInvalidInput, "graph of %d nodes exceeds the server limit of %d", n, s.MaxNodes)
	}
	if e := opts.EdgeCount(); e.Cmp(big.NewInt(s.MaxEdges)) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph of %s edges exceeds the server limit of %d", e, s.MaxEdges)
	}
	return nil
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
}
