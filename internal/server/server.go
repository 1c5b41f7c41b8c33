// Package server exposes an engine over HTTP: grid reads, the token list,
// script runs and Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/grid"
	"github.com/san-kum/gridperm/internal/script"
)

// Engine is the part of the engine the HTTP surface uses.
type Engine interface {
	Snapshot() *grid.Grid
	Tokens() []string
	Describe(token string) (string, error)
	Busy() bool
	Run(text string, c clock.Clock) (engine.Result, error)
}

type Server struct {
	Engine  Engine
	Clock   func() clock.Clock
	Metrics http.Handler
	Logger  *slog.Logger
}

type GridResponse struct {
	Size int      `json:"size"`
	Rows []string `json:"rows"`
	Busy bool     `json:"busy"`
}

type TokenInfo struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

type ScriptRequest struct {
	Script string `json:"script"`
}

type ScriptResponse struct {
	Tokens []string `json:"tokens"`
	Ticks  int      `json:"ticks"`
	Rows   []string `json:"rows"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Invalid []string `json:"invalid,omitempty"`
	Rows    []string `json:"rows,omitempty"`
}

// NewHandler routes the API. A nil clock factory runs scripts on a 60 fps
// virtual clock.
func NewHandler(s *Server) http.Handler {
	if s.Clock == nil {
		s.Clock = func() clock.Clock { return clock.Virtual{Dt: 1.0 / 60} }
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/grid", s.GetGrid)
	r.Get("/tokens", s.GetTokens)
	r.Post("/scripts", s.RunScript)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func (s *Server) GetGrid(w http.ResponseWriter, r *http.Request) {
	g := s.Engine.Snapshot()
	writeJSON(w, http.StatusOK, GridResponse{Size: g.Size(), Rows: g.Rows(), Busy: s.Engine.Busy()})
}

func (s *Server) GetTokens(w http.ResponseWriter, r *http.Request) {
	tokens := s.Engine.Tokens()
	out := make([]TokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		desc, _ := s.Engine.Describe(tok)
		out = append(out, TokenInfo{Token: tok, Description: desc})
	}
	writeJSON(w, http.StatusOK, out)
}

// RunScript runs the posted script to completion and returns the final grid.
func (s *Server) RunScript(w http.ResponseWriter, r *http.Request) {
	var body ScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	res, err := s.Engine.Run(body.Script, s.Clock())
	if err != nil {
		var verr *script.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Invalid: verr.Invalid})
		case errors.Is(err, script.ErrEmptyScript):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, script.ErrBusy):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			s.Logger.Error("script failed", "script", body.Script, "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Rows: res.Final})
		}
		return
	}

	writeJSON(w, http.StatusOK, ScriptResponse{
		Tokens: script.Texts(res.Tokens),
		Ticks:  res.Ticks,
		Rows:   res.Final,
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
