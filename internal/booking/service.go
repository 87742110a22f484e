// Package booking accepts quote requests from tenant sites. In preview mode
// submissions are accepted and discarded.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/pkg/phone"
)

const maxMessageLen = 2000

type QuoteRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

type Quote struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantSlug string    `json:"tenant_slug"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Service    string    `json:"service,omitempty"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Result struct {
	ID      string `json:"id,omitempty"`
	Preview bool   `json:"preview"`
	Message string `json:"message"`
}

type QuoteStore interface {
	CreateQuote(ctx context.Context, q *Quote) error
}

type Service struct {
	store  QuoteStore
	logger *slog.Logger
}

func NewService(store QuoteStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// SubmitQuote validates req and, for a live tenant, persists it. A preview
// resolution never reaches the store.
func (s *Service) SubmitQuote(ctx context.Context, rc models.ResolutionContext, req QuoteRequest) (Result, error) {
	q, err := validate(req)
	if err != nil {
		return Result{}, err
	}

	if rc.IsPreview || rc.Mode.IsPreview() {
		s.logger.Info("preview quote discarded", "mode", rc.Mode, "identifier", rc.Identifier)
		return Result{Preview: true, Message: "This is a preview. Your request was not sent."}, nil
	}

	if rc.Mode != models.ModeLiveTenant {
		return Result{}, models.ErrTenantNotFound
	}
	tenantID, err := uuid.Parse(rc.TenantID)
	if err != nil {
		return Result{}, fmt.Errorf("resolved tenant id %q: %w", rc.TenantID, models.ErrTenantNotFound)
	}

	q.ID = uuid.New()
	q.TenantID = tenantID
	q.TenantSlug = rc.Identifier
	if err := s.store.CreateQuote(ctx, &q); err != nil {
		return Result{}, fmt.Errorf("create quote: %w", err)
	}

	s.logger.Info("quote received", "tenant", rc.Identifier, "quote_id", q.ID)
	return Result{ID: q.ID.String(), Message: "Thanks! We'll be in touch shortly."}, nil
}

func validate(req QuoteRequest) (Quote, error) {
	verr := &models.ValidationError{}
	q := Quote{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Service: strings.TrimSpace(req.Service),
		Message: strings.TrimSpace(req.Message),
	}

	if q.Name == "" {
		verr.Add("name", "required")
	}
	if d, ok := phone.Digits(req.Phone); !ok {
		verr.Add("phone", "must be a 10-digit phone number")
	} else {
		q.Phone = d
	}
	if q.Email != "" {
		if _, err := mail.ParseAddress(q.Email); err != nil {
			verr.Add("email", "invalid email address")
		}
	}
	if len(q.Message) > maxMessageLen {
		verr.Add("message", "must be at most 2000 characters")
	}

	if err := verr.OrNil(); err != nil {
		return Quote{}, err
	}
	return q, nil
}
