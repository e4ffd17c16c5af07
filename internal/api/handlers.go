package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/OrHava/economy-project/internal/actuarial"
	"github.com/OrHava/economy-project/internal/calculation"
	"github.com/OrHava/economy-project/internal/domain"
	"github.com/OrHava/economy-project/internal/ingest"
	"github.com/OrHava/economy-project/internal/output"
	"github.com/OrHava/economy-project/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes int64 = 16 << 20

// Handler holds the dependencies of every route.
type Handler struct {
	engine       *calculation.Engine
	archive      store.Archive
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewHandler builds a Handler. A nil archive disables archiving; a nil
// logger is replaced by a no-op logger.
func NewHandler(engine *calculation.Engine, archive store.Archive, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:       engine,
		archive:      archive,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// LiabilitiesRequest is the body of POST /api/liabilities
type LiabilitiesRequest struct {
	Employees []map[string]interface{} `json:"employees"`
	Archive   bool                     `json:"archive"`
}

// LiabilitiesResponse is the body returned by POST /api/liabilities and GET /api/runs/{id}
type LiabilitiesResponse struct {
	RunID   string             `json:"runId,omitempty"`
	AsOf    time.Time          `json:"asOf"`
	Rows    []domain.ResultRow `json:"rows"`
	Summary output.Summary     `json:"summary"`
}

// BreakdownRequest is the body of POST /api/breakdown
type BreakdownRequest struct {
	Employee map[string]interface{} `json:"employee"`
}

// AssumptionsResponse describes the engine configuration
type AssumptionsResponse struct {
	Options     calculation.Options `json:"options"`
	Digest      string              `json:"digest"`
	Resignation struct {
		DefaultRate decimal.Decimal             `json:"defaultRate"`
		Bands       []actuarial.ResignationBand `json:"bands"`
	} `json:"resignation"`
	Curve *struct {
		Rates    []decimal.Decimal `json:"rates"`
		Fallback decimal.Decimal   `json:"fallback"`
	} `json:"curve,omitempty"`
	MortalityAges int `json:"mortalityAges"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetAssumptions returns the engine's options and tables.
func (h *Handler) GetAssumptions(w http.ResponseWriter, r *http.Request) {
	opts := h.engine.Options()
	tables := h.engine.Tables()

	var resp AssumptionsResponse
	resp.Options = opts
	resp.Digest = h.digest()
	resp.Resignation.DefaultRate = tables.Resignation.DefaultRate()
	resp.Resignation.Bands = tables.Resignation.Bands()
	if tables.Curve != nil {
		resp.Curve = &struct {
			Rates    []decimal.Decimal `json:"rates"`
			Fallback decimal.Decimal   `json:"fallback"`
		}{Rates: tables.Curve.Rates(), Fallback: tables.Curve.Fallback()}
	}
	resp.MortalityAges = tables.Mortality.Len()

	writeJSON(w, http.StatusOK, resp)
}

// CalculateLiabilities runs a batch and optionally archives it.
func (h *Handler) CalculateLiabilities(w http.ResponseWriter, r *http.Request) {
	var req LiabilitiesRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Employees) == 0 {
		writeError(w, http.StatusBadRequest, "no employees in request", nil)
		return
	}
	if req.Archive && h.archive == nil {
		writeError(w, http.StatusConflict, "archiving is not configured", nil)
		return
	}

	records := make([]domain.EmployeeRecord, len(req.Employees))
	for i, raw := range req.Employees {
		records[i] = ingest.Normalize(toRawRecord(raw))
	}

	rows, err := h.engine.CalculateBatch(r.Context(), records)
	if err != nil {
		h.logger.Warn("batch aborted", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "calculation cancelled", err)
		return
	}

	report := &output.Report{AsOf: h.engine.Options().AsOf, Rows: rows}
	if req.Archive {
		run := store.NewRun(report.AsOf, h.digest(), rows)
		if err := h.archive.SaveRun(r.Context(), run, rows); err != nil {
			h.logger.Error("failed to archive run", zap.String("run_id", run.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to archive run", err)
			return
		}
		report.RunID = run.ID
		h.logger.Info("archived run",
			zap.String("run_id", run.ID),
			zap.Int("employees", run.Employees),
			zap.String("total", run.Total.StringFixed(2)))
	}

	writeJSON(w, http.StatusOK, newLiabilitiesResponse(report))
}

// Breakdown calculates one employee with every projection step.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req BreakdownRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Employee) == 0 {
		writeError(w, http.StatusBadRequest, "employee is required", nil)
		return
	}

	rec := ingest.Normalize(toRawRecord(req.Employee))
	writeJSON(w, http.StatusOK, output.Breakdown{Record: &rec, Result: h.engine.Breakdown(&rec)})
}

// ListRuns returns the archived run headers.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeJSON(w, http.StatusOK, []store.Run{})
		return
	}
	runs, err := h.archive.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs", err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one archived run with its rows.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.archive == nil {
		writeError(w, http.StatusNotFound, "run not found", nil)
		return
	}

	run, rows, err := h.archive.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load run", err)
		return
	}

	writeJSON(w, http.StatusOK, newLiabilitiesResponse(&output.Report{RunID: run.ID, AsOf: run.AsOf, Rows: rows}))
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func (h *Handler) digest() string {
	digest, err := store.Digest(h.engine.Options())
	if err != nil {
		h.logger.Warn("failed to digest options", zap.Error(err))
	}
	return digest
}

func newLiabilitiesResponse(report *output.Report) LiabilitiesResponse {
	rows := report.Rows
	if rows == nil {
		rows = []domain.ResultRow{}
	}
	return LiabilitiesResponse{
		RunID:   report.RunID,
		AsOf:    report.AsOf,
		Rows:    rows,
		Summary: report.Summarize(),
	}
}

// toRawRecord stringifies posted values so they go through the same
// normalization as sheet cells. Numbers keep their literal text.
func toRawRecord(fields map[string]interface{}) ingest.RawRecord {
	raw := make(ingest.RawRecord, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
		case string:
			raw[key] = v
		case json.Number:
			raw[key] = v.String()
		case bool:
			if v {
				raw[key] = "true"
			} else {
				raw[key] = "false"
			}
		default:
			raw[key] = fmt.Sprint(v)
		}
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
