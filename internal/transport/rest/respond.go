package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/transport/middleware"
	"github.com/filatei/btorestate/pkg/ctxutil"
)

// IdempotencyKeyHeader carries the client's retry key on mutating requests.
const IdempotencyKeyHeader = middleware.IdempotencyKeyHeader

const (
	maxJSONBody = 1 << 20
	// contentionRetryAfter is the Retry-After hint, in seconds, on a 503 caused by write contention.
	contentionRetryAfter = "1"
)

type errorResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code,omitempty"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error onto the HTTP status and error code
// clients rely on. Anything unrecognised is logged and hidden behind a 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		resp := errorResponse{Error: "validation failed", Code: "validation", Fields: make([]fieldResponse, len(vErr.Errors))}
		if errors.Is(err, domain.ErrInvalidAmount) {
			resp.Code = "invalid_amount"
		}
		for i, fe := range vErr.Errors {
			resp.Fields[i] = fieldResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "validation"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Code: "unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: publicMessage(err, domain.ErrForbidden), Code: "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: "not_found"})
	case errors.Is(err, domain.ErrInvalidToken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid invite token", Code: "invalid_token"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: publicMessage(err, domain.ErrConflict), Code: "conflict"})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists", Code: "already_exists"})
	case errors.Is(err, domain.ErrContention):
		log.WarnContext(r.Context(), "request lost to write contention",
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()),
		)
		w.Header().Set("Retry-After", contentionRetryAfter)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "too much concurrent activity, retry shortly", Code: "contention"})
	case errors.Is(err, domain.ErrUploadFailed):
		log.ErrorContext(r.Context(), "receipt upload failed",
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "receipt upload failed", Code: "upload_failed"})
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// publicMessage returns the domain's explanation after the sentinel, so
// "conflict: already a member" is shown as "already a member". Wrapping
// context added by lower layers is dropped.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

// idempotencyKey returns the key middleware.IdempotencyKey accepted.
func idempotencyKey(r *http.Request) string {
	return ctxutil.IdempotencyKeyFromCtx(r.Context())
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, fmt.Sprintf("must be an integer, got %q", v))
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, domain.NewValidationError(name, "must be true or false")
	}
	return b, nil
}
