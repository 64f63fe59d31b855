// Package server exposes the cost pipeline over HTTP for the dashboard.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/lvonguyen/azure-cost-dashboard/internal/config"
	"github.com/lvonguyen/azure-cost-dashboard/internal/pipeline"
	"github.com/lvonguyen/azure-cost-dashboard/internal/providers"
	"github.com/lvonguyen/azure-cost-dashboard/internal/reporter"
	"github.com/lvonguyen/azure-cost-dashboard/internal/timeframe"
)

// Server routes dashboard requests into the pipeline and maps pipeline
// errors to HTTP statuses. It holds no per-request state.
type Server struct {
	cfg        *config.Config
	pipe       *pipeline.Pipeline
	logger     *zap.Logger
	mux        *http.ServeMux
	liveSource func() (providers.RowSource, error)
}

// New creates a Server. The live source is constructed per request, only
// when real data is asked for and credentials validate.
func New(cfg *config.Config, pipe *pipeline.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		pipe:   pipe,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.liveSource = func() (providers.RowSource, error) {
		return providers.NewAzureCostSource(providers.AzureConfig{
			TenantID:       cfg.Azure.TenantID,
			ClientID:       cfg.Azure.ClientID,
			ClientSecret:   cfg.Azure.ClientSecret,
			SubscriptionID: cfg.Azure.SubscriptionID,
		})
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/cost-data", s.handleCostData)
	s.mux.HandleFunc("/export-csv", s.handleExportCSV)
}

// handleIndex renders the dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !s.requireGet(w, r) {
		return
	}

	if err := reporter.RenderDashboard(w, reporter.DashboardPage{Title: "Azure Cost Dashboard"}); err != nil {
		s.logger.Error("failed to render dashboard", zap.Error(err))
	}
}

// handleCostData serves the normalized cost report as JSON. The mock
// path is governed solely by the use_mock_data flag; missing credentials
// on the live path are a client error, never a silent fallback.
func (s *Server) handleCostData(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	token := queryDefault(r, "timeframe", "daily")
	useMock := queryDefault(r, "use_mock_data", "true") == "true"

	var live providers.RowSource
	if !useMock {
		if err := s.cfg.Azure.Validate(); err != nil {
			s.writeError(w, http.StatusBadRequest, "Azure credentials are not configured in the environment.")
			return
		}
		source, err := s.liveSource()
		if err != nil {
			s.logger.Error("failed to create live source", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "failed to initialize Azure client")
			return
		}
		live = source
	}

	report, err := s.pipe.Run(r.Context(), token, useMock, live)
	if err != nil {
		s.writePipelineError(w, token, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleExportCSV streams the cost series as a CSV attachment. Export
// always uses the synthetic generator, matching the upstream dashboard.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	token := queryDefault(r, "timeframe", "daily")

	report, err := s.pipe.Run(r.Context(), token, true, nil)
	if err != nil {
		s.writePipelineError(w, token, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cost_data_%s.csv", token))

	if err := reporter.WriteSeriesCSV(w, report.Series()); err != nil {
		s.logger.Error("failed to write CSV export", zap.Error(err))
	}
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses.
func (s *Server) writePipelineError(w http.ResponseWriter, token string, err error) {
	var upstream *providers.UpstreamError

	switch {
	case errors.Is(err, timeframe.ErrInvalidTimeframe):
		s.writeError(w, http.StatusBadRequest, "Invalid timeframe")
	case errors.Is(err, pipeline.ErrNoData):
		s.writeError(w, http.StatusNotFound, "No data available")
	case errors.As(err, &upstream):
		s.logger.Error("upstream billing query failed",
			zap.String("timeframe", token),
			zap.Int("status", upstream.StatusCode),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, upstream.Error())
	default:
		s.logger.Error("cost pipeline failed", zap.String("timeframe", token), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
