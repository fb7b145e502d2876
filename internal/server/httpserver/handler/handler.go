package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/core/service"
	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 16

// Config holds the dependencies of a Handler.
type Config struct {
	// Links runs the linking flow. Required.
	Links *service.LinkService

	// HubUserHeader names the header holding the signed-in hub user.
	HubUserHeader string

	// LoginURL, when set, receives callback visitors without a hub user.
	LoginURL string

	// Logger defaults to logger.Default().
	Logger logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler serves the hublink HTTP API.
type Handler struct {
	links         *service.LinkService
	registry      *service.Registry
	hubUserHeader string
	loginURL      string
	logger        logger.Logger
	now           func() time.Time
	started       time.Time
	draining      atomic.Bool
}

// New creates a Handler.
func New(cfg Config) *Handler {
	h := &Handler{
		links:         cfg.Links,
		registry:      cfg.Links.Registry(),
		hubUserHeader: cfg.HubUserHeader,
		loginURL:      cfg.LoginURL,
		logger:        cfg.Logger,
		now:           cfg.Now,
	}
	if h.hubUserHeader == "" {
		h.hubUserHeader = "X-Hub-User"
	}
	if h.logger == nil {
		h.logger = logger.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	h.started = h.now()
	return h
}

// writeJSON writes a success response in the standard envelope.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response in the standard envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := getRequestID(r)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(NewErrorResponse(requestID, code, message))
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) && de.Code != domain.ErrInternalServer.Code {
		msg := de.Message
		if de.Details != "" {
			msg += ": " + de.Details
		}
		h.writeError(w, r, errorCodeToHTTPStatus(de.Code), de.Code, msg)
		return
	}

	logger.L(r.Context()).Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternalServer.Code, domain.ErrInternalServer.Message)
}

// decodeJSON reads a bounded JSON body into v. It writes the error response
// itself and reports whether decoding succeeded.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body")
		return false
	}
	return true
}

func getRequestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4100"):
		return http.StatusGone
	case strings.HasPrefix(code, "HL-AUTH-401"):
		return http.StatusUnauthorized
	case strings.HasPrefix(code, "HL-ARG-"), strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-5030"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func version() string {
	return buildinfo.Get().Version
}
