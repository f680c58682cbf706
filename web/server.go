// Package web serves the analysis views as a read-only JSON API. The only
// write is a reload, which replaces the whole snapshot.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"ponto/analysis"
	"ponto/importer"
	"ponto/output"
)

// ReloadFunc loads a fresh snapshot from the configured sources.
type ReloadFunc func(ctx context.Context) (analysis.Snapshot, error)

type Options struct {
	Tolerances     analysis.Tolerances
	DefaultPeriod  string
	AllowedOrigins []string
	Logger         *slog.Logger
	Reload         ReloadFunc
	Now            func() time.Time
}

type Server struct {
	opts   Options
	logger *slog.Logger
	router chi.Router

	mu     sync.RWMutex
	result *analysis.Result

	reloadMu sync.Mutex
}

type errorResponse struct {
	Error string `json:"error"`
}

type reloadResponse struct {
	SnapshotID  string `json:"snapshotId"`
	Source      string `json:"source"`
	Rows        int    `json:"rows"`
	Records     int    `json:"records"`
	SkippedRows int    `json:"skippedRows"`
}

var errNoData = errors.New("no data loaded")

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	server := &Server{opts: opts, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", server.handleSummary)
		r.Get("/records", server.handleRecords)
		r.Get("/ranking", server.handleRanking)
		r.Get("/employees/{name}/details", server.handleDetails)
		r.Get("/export", server.handleExport)
		r.Post("/reload", server.handleReload)
	})
	server.router = r

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetSnapshot analyses snapshot and makes it the served result.
func (s *Server) SetSnapshot(snapshot analysis.Snapshot) *analysis.Result {
	result := analysis.Run(snapshot, s.opts.Tolerances)
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result
}

func (s *Server) current() (*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, errNoData
	}
	return s.result, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, filter, ok := s.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, BuildSummaryView(result, filter))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	result, filter, ok := s.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, BuildRecordRows(result.Table(filter)))
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	result, filter, ok := s.prepare(w, r)
	if !ok {
		return
	}
	group, err := analysis.ParseGroupBy(r.URL.Query().Get("group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildRankingRows(result.Ranking(filter, group)))
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	result, filter, ok := s.prepare(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("employee name is required"))
		return
	}
	writeJSON(w, http.StatusOK, BuildRecordRows(result.Details(name, filter.Period)))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, filter, ok := s.prepare(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	format := strings.TrimSpace(query.Get("format"))
	if format == "" {
		format = "excel"
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view := strings.ToLower(strings.TrimSpace(query.Get("view")))
	var buffer bytes.Buffer
	switch view {
	case "", "records":
		view = "records"
		err = writer.WriteRecords(&buffer, result.Table(filter))
	case "ranking":
		group, groupErr := analysis.ParseGroupBy(query.Get("group"))
		if groupErr != nil {
			writeError(w, http.StatusBadRequest, groupErr)
			return
		}
		err = writer.WriteRanking(&buffer, result.Ranking(filter, group))
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported view %q (supported: records, ranking)", view))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	extension := "xlsx"
	if strings.EqualFold(format, "csv") {
		extension = "csv"
	}
	w.Header().Set("Content-Type", output.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ponto-"+view+"."+extension))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.Bytes())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.opts.Reload == nil {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("reload is not configured"))
		return
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snapshot, err := s.opts.Reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", slog.Any("error", err))
		writeError(w, loadErrorStatus(err), err)
		return
	}

	result := s.SetSnapshot(snapshot)
	s.logger.Info("snapshot reloaded",
		slog.String("snapshot", result.SnapshotID.String()),
		slog.Int("rows", len(snapshot.Rows)),
		slog.Int("skipped", len(result.Skipped)),
	)
	writeJSON(w, http.StatusOK, reloadResponse{
		SnapshotID:  result.SnapshotID.String(),
		Source:      result.Source,
		Rows:        len(snapshot.Rows),
		Records:     len(result.Records),
		SkippedRows: len(result.Skipped),
	})
}

// prepare resolves the current result and the period/supervisor filter. It
// writes the error response itself and reports false when the request ends.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (*analysis.Result, analysis.Filter, bool) {
	result, err := s.current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return nil, analysis.Filter{}, false
	}

	query := r.URL.Query()
	periodRaw := query.Get("period")
	if !query.Has("period") {
		periodRaw = s.opts.DefaultPeriod
	}
	period, err := analysis.ParsePeriod(periodRaw, s.opts.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, analysis.Filter{}, false
	}

	return result, analysis.Filter{Period: period, Supervisor: query.Get("supervisor")}, true
}

func loadErrorStatus(err error) int {
	switch {
	case errors.Is(err, importer.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrDataUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
