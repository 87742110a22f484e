package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/sitehost/internal/booking"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/tenant"
)

type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, rc models.ResolutionContext, req booking.QuoteRequest) (booking.Result, error)
}

type QuoteHandler struct {
	svc    QuoteSubmitter
	logger *slog.Logger
}

func NewQuoteHandler(svc QuoteSubmitter, logger *slog.Logger) *QuoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteHandler{svc: svc, logger: logger}
}

// Submit must run behind SiteHandler.WithSite.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if tenant.SiteFromContext(ctx) == nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "site not resolved")
		return
	}
	rc, _ := tenant.ResolutionFromContext(ctx)
	rc.IsPreview = tenant.IsPreview(ctx)

	var req booking.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.SubmitQuote(ctx, rc, req)
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:   "validation_failed",
			Message: "please check the highlighted fields",
			Fields:  verr.Fields,
		})
		return
	case errors.Is(err, models.ErrTenantNotFound):
		writeError(w, http.StatusNotFound, "tenant_not_found", "quotes are not accepted on this site")
		return
	case err != nil:
		h.logger.Error("submit quote failed", "tenant", rc.Identifier, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not send your request")
		return
	}

	status := http.StatusCreated
	if res.Preview {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}
