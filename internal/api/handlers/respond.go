package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

const (
	HeaderPreviewMode = "X-Preview-Mode"
	HeaderRobotsTag   = "X-Robots-Tag"

	msgPreviewInvalid = "This preview link is invalid or has expired"

	maxBodyBytes = 64 << 10
)

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// decodeBody reads at most maxBodyBytes of JSON into v. On failure it writes
// the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body is too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
	return false
}

// markPreview keeps previews out of search indexes and lets the page shell
// show a preview banner.
func markPreview(w http.ResponseWriter, rc models.ResolutionContext) {
	if rc.IsPreview {
		w.Header().Set(HeaderPreviewMode, "true")
		w.Header().Set(HeaderRobotsTag, "noindex, nofollow")
	}
}

// writeResolveError maps a resolution failure to its HTTP response. The
// resolution context decides whether a validation failure belongs to the
// visitor's preview link or to a broken tenant record.
func writeResolveError(w http.ResponseWriter, logger *slog.Logger, rc models.ResolutionContext, err error) {
	markPreview(w, rc)

	var verr *models.ValidationError
	switch {
	case rc.IsPreview && models.IsPreviewError(err):
		body := errorBody{Error: "preview_invalid", Message: msgPreviewInvalid}
		if errors.As(err, &verr) {
			body.Fields = verr.Fields
		}
		logger.Info("preview rejected", "mode", rc.Mode, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, body)
	case errors.Is(err, models.ErrTenantNotFound):
		writeError(w, http.StatusNotFound, "tenant_not_found", "No site is published at this address")
	case errors.Is(err, models.ErrTenantSuspended):
		writeError(w, http.StatusForbidden, "tenant_suspended", "This site is currently unavailable")
	case errors.Is(err, models.ErrGatewayTimeout),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "try_again", "The site is busy, please try again")
	default:
		logger.Error("site resolution failed",
			"mode", rc.Mode,
			"identifier", rc.Identifier,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
