// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     server
// Description: HTTP handlers for parsing, table dumps and run history
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	llerror "github.com/msto63/llrec/foundation/core/error"
	"github.com/msto63/llrec/foundation/ll1"
	"github.com/msto63/llrec/foundation/ll1/grammar"
	"github.com/msto63/llrec/foundation/ll1/lexer"
	"github.com/msto63/llrec/foundation/ll1/parser"
	"github.com/msto63/llrec/foundation/ll1/source"
	"github.com/msto63/llrec/internal/history/store"
	"github.com/msto63/llrec/pkg/core/health"
	"github.com/msto63/llrec/pkg/core/logging"
)

// ParseRequest represents a parse request
type ParseRequest struct {
	Source string `json:"source"`
	Trace  bool   `json:"trace,omitempty"`
}

// ErrorInfo describes why a program was rejected
type ErrorInfo struct {
	Kind     string   `json:"kind"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Step     int      `json:"step"`
	Position int      `json:"position"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

// ParseResponse represents the outcome of a parse
type ParseResponse struct {
	RunID      string              `json:"run_id"`
	Accepted   bool                `json:"accepted"`
	State      string              `json:"state"`
	Table      string              `json:"table"`
	Lexed      string              `json:"lexed"`
	Tokens     []lexer.Token       `json:"tokens"`
	Steps      int                 `json:"steps"`
	Consumed   int                 `json:"consumed"`
	DurationMs float64             `json:"duration_ms"`
	Error      *ErrorInfo          `json:"error,omitempty"`
	Trace      []parser.TraceEvent `json:"trace,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RunsResponse represents a list of recorded runs
type RunsResponse struct {
	Runs  []*store.Run `json:"runs"`
	Total int          `json:"total"`
}

// Handler handles HTTP requests of the API
type Handler struct {
	recognizer   *ll1.Recognizer
	history      store.RunStore
	health       *health.Registry
	logger       *logging.Logger
	maxBodyBytes int64
	maxSource    int
	startTime    time.Time
	version      string
}

// NewHandler creates a new API handler. history may be nil.
func NewHandler(cfg Config, recognizer *ll1.Recognizer, history store.RunStore, registry *health.Registry, logger *logging.Logger) *Handler {
	return &Handler{
		recognizer:   recognizer,
		history:      history,
		health:       registry,
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
		maxSource:    cfg.MaxSourceBytes,
		startTime:    time.Now(),
		version:      cfg.Version,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.URL.Path == "/health" || r.URL.Path == "/health/" {
		h.handleHealth(w, r)
		return
	}

	// Route requests
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch {
	case path == "":
		h.handleRoot(w, r)
	case path == "health":
		h.handleHealth(w, r)
	case path == "parse":
		h.handleParse(w, r)
	case path == "table":
		h.handleTable(w, r)
	case path == "runs":
		h.handleRuns(w, r)
	case path == "runs/stats":
		h.handleRunStats(w, r)
	case strings.HasPrefix(path, "runs/"):
		h.handleRun(w, r, strings.TrimPrefix(path, "runs/"))
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Endpoint not found", "")
	}
}

// handleRoot lists the endpoints
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "llrec",
		"version": h.version,
		"table":   string(h.recognizer.Table().Variant()),
		"endpoints": []string{
			"POST /api/v1/parse",
			"GET  /api/v1/table",
			"GET  /api/v1/runs",
			"GET  /api/v1/runs/stats",
			"GET  /api/v1/runs/{id}",
			"GET  /api/v1/ws",
			"GET  /health",
		},
	}
	h.writeJSON(w, http.StatusOK, info)
}

// handleHealth runs the registered health checks
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := h.health.Check(ctx)
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

// handleParse recognizes a program
func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", "")
		return
	}

	var req ParseRequest
	if err := h.readJSON(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large", err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON", err.Error())
		return
	}

	resp, status, err := h.parse(req.Source, req.Trace, nil, store.OriginAPI)
	if err != nil {
		h.writeError(w, status, strings.ToLower(string(llerror.GetCode(err))), "Source rejected before parsing", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// parse normalizes src like a source file, recognizes it and records the run.
// On failure the HTTP status to report is returned with the error.
func (h *Handler) parse(src string, trace bool, tracer parser.Tracer, origin string) (*ParseResponse, int, error) {
	input, err := source.Load(strings.NewReader(src), source.Options{MaxBytes: h.maxSource})
	if err != nil {
		return nil, statusForError(err), err
	}

	// Recorded runs keep their trace for replay
	var out *ll1.Outcome
	if trace || tracer != nil || h.history != nil {
		out, err = h.recognizer.RecognizeTraced(input, tracer)
	} else {
		out, err = h.recognizer.Recognize(input)
	}
	if err != nil {
		return nil, statusForError(err), err
	}

	h.record(out, origin)
	return newParseResponse(out, h.recognizer.Table(), trace), http.StatusOK, nil
}

func (h *Handler) record(out *ll1.Outcome, origin string) {
	if h.history == nil {
		return
	}
	run := store.FromOutcome(out, string(h.recognizer.Table().Variant()), origin)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.history.Record(ctx, run); err != nil {
		h.logger.Warn("Failed to record run", "run_id", out.RunID, "error", err)
	}
}

func statusForError(err error) int {
	return llerror.GetCode(err).HTTPStatus()
}

func newParseResponse(out *ll1.Outcome, table *grammar.Table, withTrace bool) *ParseResponse {
	res := out.Result
	resp := &ParseResponse{
		RunID:      out.RunID,
		Accepted:   out.Accepted(),
		State:      res.State.String(),
		Table:      string(table.Variant()),
		Lexed:      out.Lexed(),
		Tokens:     out.Tokens,
		Steps:      res.Steps,
		Consumed:   res.Consumed,
		DurationMs: float64(out.Duration.Microseconds()) / 1000,
	}
	if withTrace {
		resp.Trace = res.Trace
	}

	if perr := res.Err; perr != nil {
		info := &ErrorInfo{
			Kind:     perr.Kind.String(),
			Code:     string(perr.Code()),
			Message:  perr.Error(),
			Step:     perr.Step,
			Position: perr.Position,
		}
		if tok, ok := out.ErrorToken(); ok {
			info.Line = tok.Line
			info.Column = tok.Column
		}
		switch {
		case perr.Expected != "":
			info.Expected = []string{perr.Expected}
		case perr.NonTerminal != "":
			info.Expected = table.Expected(perr.NonTerminal)
		}
		resp.Error = info
	}
	return resp
}

// handleTable returns the parse table with grammar and sets
func (h *Handler) handleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	table := h.recognizer.Table()
	if name := r.URL.Query().Get("variant"); name != "" {
		variant, err := grammar.ParseVariant(name)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_variant", "Unknown table variant", err.Error())
			return
		}
		if table, err = grammar.ForVariant(variant); err != nil {
			h.writeError(w, http.StatusInternalServerError, "table_error", "Failed to build table", err.Error())
			return
		}
	}

	desc, err := grammar.Describe(table)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "table_error", "Failed to describe table", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, desc)
}

// handleRuns lists recorded runs
func (h *Handler) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !h.historyAvailable(w, r) {
		return
	}

	q := r.URL.Query()
	filter := store.RunFilter{
		Verdict:   store.Verdict(strings.ToUpper(q.Get("verdict"))),
		Table:     q.Get("table"),
		Origin:    q.Get("origin"),
		ErrorKind: q.Get("error_kind"),
		Limit:     50,
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid limit", v)
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid offset", v)
			return
		}
		filter.Offset = n
	}
	if v := q.Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid since duration", v)
			return
		}
		filter.StartTime = time.Now().Add(-d)
	}

	runs, err := h.history.Query(r.Context(), filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to query runs", err.Error())
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	h.writeJSON(w, http.StatusOK, RunsResponse{Runs: runs, Total: len(runs)})
}

// handleRunStats returns aggregated run statistics
func (h *Handler) handleRunStats(w http.ResponseWriter, r *http.Request) {
	if !h.historyAvailable(w, r) {
		return
	}

	stats, err := h.history.Stats(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to compute stats", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// handleRun returns one run including its trace
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request, id string) {
	if !h.historyAvailable(w, r) {
		return
	}

	run, err := h.history.Get(r.Context(), id)
	if llerror.HasCode(err, llerror.CodeNotFound) {
		h.writeError(w, http.StatusNotFound, "not_found", "Run not found", id)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to load run", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

func (h *Handler) historyAvailable(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return false
	}
	if h.history == nil {
		h.writeError(w, http.StatusServiceUnavailable, "history_disabled", "Run history is disabled", "")
		return false
	}
	return true
}

// Helper methods

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	h.writeJSON(w, status, resp)
}
