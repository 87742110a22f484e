package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/models"
)

type PreviewEncoder interface {
	Encode(p models.PreviewPayload, ttl time.Duration) (string, models.PreviewPayload, error)
}

// AdminHandler serves platform operator tools.
type AdminHandler struct {
	codec      PreviewEncoder
	publicURL  string
	defaultTTL time.Duration
	logger     *slog.Logger
}

func NewAdminHandler(codec PreviewEncoder, publicURL string, defaultTTL time.Duration, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		codec:      codec,
		publicURL:  strings.TrimRight(publicURL, "/"),
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

type createPreviewRequest struct {
	BusinessName string `json:"name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	Industry     string `json:"industry"`
	TenantID     string `json:"tenant_id,omitempty"`
	// TTL is a Go duration string such as "72h". Empty uses the default.
	TTL string `json:"ttl,omitempty"`
}

type createPreviewResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreatePreview signs a preview token for a prospect and returns the link to
// send them.
func (h *AdminHandler) CreatePreview(w http.ResponseWriter, r *http.Request) {
	var req createPreviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ttl := h.defaultTTL
	if req.TTL != "" {
		d, err := time.ParseDuration(req.TTL)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "ttl must be a duration such as 72h")
			return
		}
		ttl = d
	}

	token, p, err := h.codec.Encode(models.PreviewPayload{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		City:         req.City,
		State:        req.State,
		Industry:     req.Industry,
		TenantID:     strings.TrimSpace(req.TenantID),
	}, ttl)
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:   "validation_failed",
			Message: "preview details are invalid",
			Fields:  verr.Fields,
		})
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	q := url.Values{classifier.ParamToken: {token}}
	if p.TenantID != "" {
		q.Set(classifier.ParamTenantID, p.TenantID)
	}

	h.logger.Info("preview link created",
		"subject", p.Subject,
		"industry", p.Industry,
		"expires_at", p.ExpiresAt,
	)
	writeJSON(w, http.StatusCreated, createPreviewResponse{
		Token:     token,
		URL:       h.publicURL + "/?" + q.Encode(),
		Subject:   p.Subject,
		ExpiresAt: time.Unix(p.ExpiresAt, 0).UTC(),
	})
}
