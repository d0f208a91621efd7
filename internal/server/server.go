// Package server exposes the calculation tools over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/metrics"
	"github.com/katilimfinans/payment-plan-engine/internal/tools"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Server routes tool calls to their handlers.
type Server struct {
	tools   map[string]tools.ToolHandler
	timeout time.Duration
	log     *zap.Logger
}

// FieldError is one rejected field in an error response.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// New creates a Server. timeout bounds each tool call.
func New(registry map[string]tools.ToolHandler, timeout time.Duration, log *zap.Logger) *Server {
	return &Server{tools: registry, timeout: timeout, log: log}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "payment-plan-engine"})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tools", s.listTools)
		r.Post("/tools/{name}", s.callTool)
	})

	return r
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string][]string{"tools": names})
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	handler, ok := s.tools[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown tool " + name})
		return
	}

	var params map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "request body must be a JSON object"})
		return
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := handler(ctx, params)
	if err != nil {
		s.writeError(w, r, name, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, tool string, err error) {
	switch {
	case errors.Is(err, calculations.ErrInvalidInput):
		response := ErrorResponse{Error: err.Error()}
		for _, inputErr := range inputErrors(err) {
			response.Fields = append(response.Fields, FieldError{Field: inputErr.Field, Reason: inputErr.Reason})
		}
		writeJSON(w, http.StatusBadRequest, response)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{Error: "calculation did not finish in time"})
	default:
		s.log.Error("tool call failed",
			zap.String("tool", tool),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// inputErrors collects every InputError in err's tree, joined errors included.
func inputErrors(err error) []*calculations.InputError {
	var found []*calculations.InputError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if inputErr, ok := err.(*calculations.InputError); ok {
			found = append(found, inputErr)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return found
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
