// Package preview encodes and verifies signed, time-boxed preview tokens and
// validates preview payloads.
package preview

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

// Claims is the signed body of a preview token.
type Claims struct {
	BusinessName string `json:"bn"`
	Phone        string `json:"ph"`
	City         string `json:"city"`
	State        string `json:"st"`
	Industry     string `json:"ind"`
	TenantID     string `json:"tid,omitempty"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
	issuer string
	maxTTL time.Duration
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithMaxTTL caps the lifetime Encode will stamp.
func WithMaxTTL(d time.Duration) Option {
	return func(c *Codec) { c.maxTTL = d }
}

func NewCodec(secret, issuer string, opts ...Option) *Codec {
	c := &Codec{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Encode validates p and signs it with an expiry of now+ttl. A subject id is
// assigned when p has none.
func (c *Codec) Encode(p models.PreviewPayload, ttl time.Duration) (string, models.PreviewPayload, error) {
	if ttl < time.Second {
		return "", models.PreviewPayload{}, fmt.Errorf("preview ttl must be at least one second, got %s", ttl)
	}
	if c.maxTTL > 0 && ttl > c.maxTTL {
		return "", models.PreviewPayload{}, fmt.Errorf("preview ttl %s exceeds maximum %s", ttl, c.maxTTL)
	}

	p, err := Validate(p)
	if err != nil {
		return "", models.PreviewPayload{}, err
	}
	if p.Subject == "" {
		p.Subject = uuid.NewString()
	}

	// Expiry has whole-second precision; round up so the token lives at
	// least ttl.
	now := c.now()
	exp := now.Add(ttl)
	if whole := exp.Truncate(time.Second); !whole.Equal(exp) {
		exp = whole.Add(time.Second)
	}
	p.ExpiresAt = exp.Unix()

	claims := Claims{
		BusinessName: p.BusinessName,
		Phone:        p.Phone,
		City:         p.City,
		State:        p.State,
		Industry:     p.Industry,
		TenantID:     p.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", models.PreviewPayload{}, fmt.Errorf("sign preview token: %w", err)
	}
	return token, p, nil
}

// Decode verifies the token signature and expiry. When expectedTenantID is
// non-empty the token must be bound to that tenant. A token without an
// expiry is treated as expired.
func (c *Codec) Decode(token, expectedTenantID string) (models.PreviewPayload, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.PreviewPayload{}, classify(err)
	}

	if expectedTenantID != "" && claims.TenantID != expectedTenantID {
		return models.PreviewPayload{}, models.ErrIdentifierMismatch
	}

	p := models.PreviewPayload{
		Subject:      claims.Subject,
		BusinessName: claims.BusinessName,
		Phone:        claims.Phone,
		City:         claims.City,
		State:        claims.State,
		Industry:     claims.Industry,
		TenantID:     claims.TenantID,
		ExpiresAt:    claims.ExpiresAt.Unix(),
	}
	return p, nil
}

// classify maps jwt parse errors onto the preview error taxonomy. Signature
// problems win over claim problems because jwt verifies the signature first.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", models.ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", models.ErrInvalidSignature, err)
	}
}
