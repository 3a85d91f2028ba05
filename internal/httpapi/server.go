// Package httpapi exposes the JSON REST API. Every response is wrapped in
// the uniform envelope {success, data?, error?}.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/origen-app/origen-server/internal/auth"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/export"
	"github.com/origen-app/origen-server/internal/receipts"
	"github.com/origen-app/origen-server/internal/users"
)

// Server is the origen HTTP API server.
type Server struct {
	users     *users.Service
	receipts  *receipts.Service
	export    *export.Service
	auth      *auth.Service
	logger    *slog.Logger
	maxUpload int64
	timeout   time.Duration
}

type Options struct {
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

func NewServer(usersSvc *users.Service, receiptsSvc *receipts.Service, exportSvc *export.Service, authSvc *auth.Service, logger *slog.Logger, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 * 1024 * 1024
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	return &Server{
		users:     usersSvc,
		receipts:  receiptsSvc,
		export:    exportSvc,
		auth:      authSvc,
		logger:    logger,
		maxUpload: opts.MaxUploadBytes,
		timeout:   opts.RequestTimeout,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/receipts", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/manual", s.handleCreateManual)
		r.Post("/upload", s.handleUpload)
		r.Get("/", s.handleList)
		r.Get("/export", s.handleExport)
		r.Get("/{id}", s.handleGetReceipt)
		r.Patch("/{id}", s.handleUpdateReceipt)
	})

	return r
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError maps domain errors onto status codes and envelope error
// bodies. Anything unrecognized is logged server-side and surfaced as a
// generic internal failure without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vf *common.ValidationFailure
	if errors.As(err, &vf) {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: &apiError{
			Message: "Validation failed",
			Code:    "VALIDATION_ERROR",
			Details: vf.FieldMap(),
		}})
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "Internal server error"

	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidInput):
		status, code, message = http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"
	case errors.Is(err, common.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"
	case errors.Is(err, common.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Not found"
	case errors.Is(err, common.ErrConflict):
		status, code, message = http.StatusConflict, "CONFLICT", "Conflict"
	}

	var appErr *common.AppError
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		code, message = appErr.Code, appErr.Message
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}

	writeJSON(w, status, envelope{Success: false, Error: &apiError{Message: message, Code: code}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
