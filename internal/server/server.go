// Package server exposes the record inserter over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/maloquacious/fineas/internal/logger"
	"github.com/maloquacious/fineas/internal/money"
	"github.com/maloquacious/fineas/internal/store"
	"github.com/shopspring/decimal"
)

// Server routes HTTP requests to a Store.
type Server struct {
	store   store.Store
	log     logger.Logger
	version string
}

// New returns a Server writing to st. The store must already be open.
func New(st store.Store, log logger.Logger, version string) *Server {
	return &Server{store: st, log: log, version: version}
}

// Handler returns the routes served by fineas.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		state, err := s.store.CheckState()
		if err != nil || state != store.StateReady {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(strings.ToUpper(state.String())))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	mux.Handle("GET /api/status", jsonOnly(http.HandlerFunc(s.handleStatus)))
	mux.Handle("POST /api/transactions", jsonOnly(http.HandlerFunc(s.handleAddTransaction)))

	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.CheckState()
	if err != nil {
		s.log.Warn("status: check state: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"state":   state.String(),
	})
}

// maxBodyBytes caps the size of a POST /api/transactions body.
const maxBodyBytes = 64 << 10

// addTransactionRequest accepts amount as a JSON number or string.
type addTransactionRequest struct {
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	t := store.Transaction{
		Type:        req.Type,
		Amount:      money.ToFloat(req.Amount),
		Description: req.Description,
		Date:        req.Date,
	}
	if err := s.store.AddTransaction(t); err != nil {
		s.log.Error("add transaction: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	s.log.Debug("added transaction via %s", r.URL.Path)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// jsonOnly enforces the JSON-only contract for API routes.
func jsonOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept")
		if !strings.Contains(accept, "application/json") && accept != "" && accept != "*/*" {
			writeJSONError(w, http.StatusNotAcceptable, "not_acceptable", "Accept must include application/json")
			return
		}
		if r.Method != http.MethodGet && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": msg,
	})
}
