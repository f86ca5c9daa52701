// Package http exposes a read-only introspection API over a checked
// project: the lint report, unit contracts, module summaries and graphs,
// plus Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/presentation/graph"
	"github.com/aretw0/graft/internal/validator"
)

// Inspector is the project surface the server exposes. *graft.Project
// satisfies it.
type Inspector interface {
	Check(ctx context.Context) (*validator.Report, error)
	Units() []graft.UnitSummary
	Describe(name string) (graft.UnitDetail, error)
	Modules() ([]graft.ModuleSummary, error)
}

// Server serves the introspection API.
type Server struct {
	inspector Inspector
	strict    bool

	checks   *prometheus.CounterVec
	findings *prometheus.GaugeVec
}

// NewHandler builds the full HTTP handler, including /metrics.
func NewHandler(inspector Inspector, strict bool) http.Handler {
	reg := prometheus.NewRegistry()

	s := &Server{
		inspector: inspector,
		strict:    strict,
		checks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "graft_checks_total",
			Help: "Validation runs served, by outcome.",
		}, []string{"outcome"}),
		findings: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "graft_report_findings",
			Help: "Findings in the last served report, by severity.",
		}, []string{"severity"}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/report", s.GetReport)
	r.Get("/units", s.ListUnits)
	r.Get("/units/{name}", s.GetUnit)
	r.Get("/modules", s.ListModules)
	r.Get("/graph", s.GetGraph)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "version": graft.Version})
}

// GetReport handles GET /report. With ?strict=true (or a server-wide strict
// setting) warnings count as failures in the reported outcome.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.inspector.Check(r.Context())
	if err != nil {
		s.checks.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("Check error: %v", err), http.StatusInternalServerError)
		return
	}

	strict := s.strict || r.URL.Query().Get("strict") == "true"
	outcome := "pass"
	if report.Err(strict) != nil {
		outcome = "fail"
	}
	s.checks.WithLabelValues(outcome).Inc()
	s.findings.WithLabelValues(string(validator.SeverityError)).Set(float64(report.ErrorCount()))
	s.findings.WithLabelValues(string(validator.SeverityWarning)).Set(float64(report.WarningCount()))

	writeJSON(w, struct {
		*validator.Report
		Outcome string `json:"outcome"`
	}{report, outcome})
}

// ListUnits handles GET /units.
func (s *Server) ListUnits(w http.ResponseWriter, r *http.Request) {
	units := s.inspector.Units()
	if units == nil {
		units = []graft.UnitSummary{}
	}
	writeJSON(w, units)
}

// GetUnit handles GET /units/{name}.
func (s *Server) GetUnit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	detail, err := s.inspector.Describe(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("unit %q not found", name), http.StatusNotFound)
		return
	}
	writeJSON(w, detail)
}

// ListModules handles GET /modules.
func (s *Server) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := s.inspector.Modules()
	if err != nil {
		http.Error(w, fmt.Sprintf("Modules error: %v", err), http.StatusInternalServerError)
		return
	}
	if modules == nil {
		modules = []graft.ModuleSummary{}
	}
	writeJSON(w, modules)
}

// GetGraph handles GET /graph, returning Mermaid markdown.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	md, err := graph.Project(s.inspector)
	if err != nil {
		http.Error(w, fmt.Sprintf("Graph error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("encode error: %v\n", err)
	}
}
