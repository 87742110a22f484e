package booking

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/preview"
	"github.com/nikhilbhutani/sitehost/internal/resolver"
)

type spyStore struct {
	calls atomic.Int32
	err   error
	last  *Quote
}

func (s *spyStore) CreateQuote(_ context.Context, q *Quote) error {
	s.calls.Add(1)
	s.last = q
	return s.err
}

// spyGateway records every read and write against the tenant store.
type spyGateway struct {
	tenant *models.Tenant
	reads  atomic.Int32
	writes atomic.Int32
}

func (g *spyGateway) GetBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	g.reads.Add(1)
	if g.tenant == nil || g.tenant.Slug != slug {
		return nil, models.ErrTenantNotFound
	}
	cp := *g.tenant
	return &cp, nil
}

func (g *spyGateway) UpdateContent(context.Context, string, models.ContentOverrides) error {
	g.writes.Add(1)
	return nil
}

func validRequest() QuoteRequest {
	return QuoteRequest{
		Name:    "Jamie Rivera",
		Phone:   "(702) 555-0143",
		Email:   "jamie@example.com",
		Service: "ceramic",
		Message: "Two cars, Saturday morning if possible.",
	}
}

func liveContext() models.ResolutionContext {
	return models.ResolutionContext{
		Mode:       models.ModeLiveTenant,
		Identifier: "acme",
		TenantID:   "6f1c1c1e-3c2a-4a38-9d0e-0c1b2a3d4e5f",
	}
}

func TestSubmitQuoteLive(t *testing.T) {
	store := &spyStore{}
	res, err := NewService(store, nil).SubmitQuote(context.Background(), liveContext(), validRequest())
	require.NoError(t, err)

	assert.False(t, res.Preview)
	assert.NotEmpty(t, res.ID)
	require.Equal(t, int32(1), store.calls.Load())
	assert.Equal(t, "7025550143", store.last.Phone)
	assert.Equal(t, "acme", store.last.TenantSlug)
	assert.Equal(t, uuid.MustParse("6f1c1c1e-3c2a-4a38-9d0e-0c1b2a3d4e5f"), store.last.TenantID)
}

func TestSubmitQuotePreviewIsInert(t *testing.T) {
	store := &spyStore{}
	svc := NewService(store, nil)

	for _, mode := range []models.Mode{models.ModeTokenPreview, models.ModeParamPreview} {
		res, err := svc.SubmitQuote(context.Background(), models.ResolutionContext{Mode: mode, IsPreview: true}, validRequest())
		require.NoError(t, err)
		assert.True(t, res.Preview)
		assert.Empty(t, res.ID)
	}
	assert.Zero(t, store.calls.Load())
}

func TestSubmitQuoteValidatesInPreview(t *testing.T) {
	store := &spyStore{}
	req := QuoteRequest{Phone: "12", Email: "not-an-email"}

	_, err := NewService(store, nil).SubmitQuote(context.Background(), models.ResolutionContext{Mode: models.ModeParamPreview, IsPreview: true}, req)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
	assert.Zero(t, store.calls.Load())
}

func TestSubmitQuotePlatformRejected(t *testing.T) {
	store := &spyStore{}
	_, err := NewService(store, nil).SubmitQuote(context.Background(), models.ResolutionContext{Mode: models.ModePlatform}, validRequest())
	require.ErrorIs(t, err, models.ErrTenantNotFound)
	assert.Zero(t, store.calls.Load())
}

func TestSubmitQuoteStoreError(t *testing.T) {
	boom := errors.New("insert failed")
	store := &spyStore{err: boom}
	_, err := NewService(store, nil).SubmitQuote(context.Background(), liveContext(), validRequest())
	require.ErrorIs(t, err, boom)
}

func TestPreviewResolveThenSubmitNeverWrites(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	codec := preview.NewCodec("booking-test-secret", "test", preview.WithClock(func() time.Time { return now }))
	gateway := &spyGateway{tenant: &models.Tenant{
		ID:       uuid.New(),
		Slug:     "acme",
		Industry: "barber",
		Status:   models.TenantActive,
	}}
	store := &spyStore{}
	res := resolver.New(resolver.Deps{
		Classifier: classifier.New(classifier.Options{BaseDomain: "platform.test"}),
		Gateway:    gateway,
		Tokens:     codec,
	})
	svc := NewService(store, nil)

	properties := gopter.NewProperties(nil)
	properties.Property("preview resolve then submit performs no writes", prop.ForAll(
		func(name, digits, city, state, ind string, useToken bool) bool {
			q := url.Values{}
			if useToken {
				tok, _, err := codec.Encode(models.PreviewPayload{
					BusinessName: name,
					Phone:        digits,
					City:         city,
					State:        state,
					Industry:     ind,
				}, time.Hour)
				if err != nil {
					return false
				}
				q.Set(classifier.ParamToken, tok)
			} else {
				q.Set(classifier.ParamName, name)
				q.Set(classifier.ParamPhone, digits)
				q.Set(classifier.ParamCity, city)
				q.Set(classifier.ParamState, state)
				q.Set(classifier.ParamIndustry, ind)
			}

			r, err := res.ResolveInput(context.Background(), classifier.Input{Host: "www.platform.test", Query: q})
			if err != nil || !r.Context.IsPreview {
				return false
			}
			out, err := svc.SubmitQuote(context.Background(), r.Context, validRequest())
			if err != nil || !out.Preview {
				return false
			}
			return gateway.writes.Load() == 0 && gateway.reads.Load() == 0 && store.calls.Load() == 0
		},
		gen.RegexMatch(`^[A-Z][a-z]{2,20}$`),
		gen.RegexMatch(`^[2-9][0-9]{9}$`),
		gen.RegexMatch(`^[A-Z][a-z]{2,15}$`),
		gen.RegexMatch(`^[A-Z]{2}$`),
		gen.OneConstOf("mobile-detailing", "maid-service", "lawncare", "pet-grooming", "barber"),
		gen.Bool(),
	))
	properties.TestingRun(t)

	// The same wiring does write for a live tenant, so the spies are live.
	r, err := res.ResolveInput(context.Background(), classifier.Input{Host: "acme.platform.test"})
	require.NoError(t, err)
	_, err = svc.SubmitQuote(context.Background(), r.Context, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.calls.Load())
}
