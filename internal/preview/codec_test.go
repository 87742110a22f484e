package preview

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

const testSecret = "test-preview-secret"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock { return &fakeClock{t: time.Unix(1_760_000_000, 0)} }

func newTestCodec(clk *fakeClock) *Codec { return NewCodec(testSecret, "test", WithClock(clk.Now)) }

func samplePayload() models.PreviewPayload {
	return models.PreviewPayload{
		Subject:      "subject-1",
		BusinessName: "JP's Mobile Detail",
		Phone:        "7024203140",
		City:         "Bullhead City",
		State:        "AZ",
		Industry:     "mobile-detailing",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	clk := newClock()
	c := newTestCodec(clk)
	in := samplePayload()

	tok, stamped, err := c.Encode(in, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, clk.t.Add(time.Hour).Unix(), stamped.ExpiresAt)

	clk.Advance(30 * time.Minute)
	out, err := c.Decode(tok, "")
	require.NoError(t, err)

	want := in
	want.ExpiresAt = stamped.ExpiresAt
	assert.Equal(t, want, out)
}

func TestDecodeAfterExpiry(t *testing.T) {
	clk := newClock()
	c := newTestCodec(clk)

	tok, _, err := c.Encode(samplePayload(), time.Minute)
	require.NoError(t, err)

	clk.Advance(time.Minute + time.Second)
	_, err = c.Decode(tok, "")
	require.ErrorIs(t, err, models.ErrExpired)
}

func TestDecodeAtExactExpiryFails(t *testing.T) {
	clk := newClock()
	c := newTestCodec(clk)

	tok, _, err := c.Encode(samplePayload(), time.Minute)
	require.NoError(t, err)

	clk.Advance(time.Minute)
	_, err = c.Decode(tok, "")
	require.ErrorIs(t, err, models.ErrExpired)
}

func TestExpiryRoundsUpFromSubSecondClock(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_760_000_000, int64(900*time.Millisecond))}
	c := newTestCodec(clk)

	tok, stamped, err := c.Encode(samplePayload(), 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1_760_000_011), stamped.ExpiresAt)

	clk.Advance(9500 * time.Millisecond)
	_, err = c.Decode(tok, "")
	require.NoError(t, err)

	clk.Advance(time.Second)
	_, err = c.Decode(tok, "")
	require.ErrorIs(t, err, models.ErrExpired)
}

func TestDecodeMissingExpiryFailsClosed(t *testing.T) {
	claims := Claims{
		BusinessName: "Acme",
		Industry:     "maid-service",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "no-exp",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestCodec(newClock()).Decode(tok, "")
	require.ErrorIs(t, err, models.ErrExpired)
}

func TestDecodeBadSignature(t *testing.T) {
	clk := newClock()
	other := NewCodec("another-secret", "test", WithClock(clk.Now))
	tok, _, err := other.Encode(samplePayload(), time.Hour)
	require.NoError(t, err)

	_, err = newTestCodec(clk).Decode(tok, "")
	require.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestDecodeBadSignatureBeatsExpiry(t *testing.T) {
	clk := newClock()
	other := NewCodec("another-secret", "test", WithClock(clk.Now))
	tok, _, err := other.Encode(samplePayload(), time.Minute)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	_, err = newTestCodec(clk).Decode(tok, "")
	require.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestDecodeTamperedPayload(t *testing.T) {
	clk := newClock()
	c := newTestCodec(clk)
	tok, _, err := c.Encode(samplePayload(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{BusinessName: "Evil"})
	forgedTok, err := forged.SignedString([]byte("x"))
	require.NoError(t, err)
	parts[1] = strings.Split(forgedTok, ".")[1]

	_, err = c.Decode(strings.Join(parts, "."), "")
	require.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestDecodeRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		BusinessName: "Acme",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestCodec(newClock()).Decode(tok, "")
	require.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := newTestCodec(newClock()).Decode("not-a-token", "")
	require.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestDecodeIdentifierMismatch(t *testing.T) {
	clk := newClock()
	c := newTestCodec(clk)

	bound := samplePayload()
	bound.TenantID = "tenant-1"
	tok, _, err := c.Encode(bound, time.Hour)
	require.NoError(t, err)

	_, err = c.Decode(tok, "tenant-1")
	require.NoError(t, err)

	_, err = c.Decode(tok, "tenant-2")
	require.ErrorIs(t, err, models.ErrIdentifierMismatch)

	unbound, _, err := c.Encode(samplePayload(), time.Hour)
	require.NoError(t, err)
	_, err = c.Decode(unbound, "tenant-1")
	require.ErrorIs(t, err, models.ErrIdentifierMismatch)
}

func TestEncodeAssignsSubject(t *testing.T) {
	c := newTestCodec(newClock())
	p := samplePayload()
	p.Subject = ""

	tok, stamped, err := c.Encode(p, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, stamped.Subject)

	out, err := c.Decode(tok, "")
	require.NoError(t, err)
	assert.Equal(t, stamped.Subject, out.Subject)
}

func TestEncodeRejectsBadTTL(t *testing.T) {
	clk := newClock()
	c := NewCodec(testSecret, "test", WithClock(clk.Now), WithMaxTTL(24*time.Hour))

	_, _, err := c.Encode(samplePayload(), 0)
	require.Error(t, err)
	_, _, err = c.Encode(samplePayload(), -time.Hour)
	require.Error(t, err)
	_, _, err = c.Encode(samplePayload(), 48*time.Hour)
	require.Error(t, err)
}

func TestEncodeRejectsInvalidPayload(t *testing.T) {
	_, _, err := newTestCodec(newClock()).Encode(models.PreviewPayload{}, time.Hour)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 5)
}

func TestRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("decode(encode(p, ttl)) == p before expiry, Expired after", prop.ForAll(
		func(name, digits, city, state string, ttlSec, offsetMs int64) bool {
			clk := newClock()
			clk.Advance(time.Duration(offsetMs) * time.Millisecond)
			c := newTestCodec(clk)
			in := models.PreviewPayload{
				Subject:      "prop-subject",
				BusinessName: name,
				Phone:        digits,
				City:         city,
				State:        state,
				Industry:     "pet-grooming",
			}
			ttl := time.Duration(ttlSec) * time.Second

			tok, stamped, err := c.Encode(in, ttl)
			if err != nil {
				return false
			}

			if time.Unix(stamped.ExpiresAt, 0).Before(clk.t.Add(ttl)) {
				return false
			}

			clk.Advance(ttl - time.Millisecond)
			out, err := c.Decode(tok, "")
			if err != nil {
				return false
			}
			want := in
			want.ExpiresAt = stamped.ExpiresAt
			if out != want {
				return false
			}

			clk.Advance(2 * time.Second)
			_, err = c.Decode(tok, "")
			return errors.Is(err, models.ErrExpired)
		},
		gen.RegexMatch(`^[A-Z][a-z]{2,20}$`),
		gen.RegexMatch(`^[2-9][0-9]{9}$`),
		gen.RegexMatch(`^[A-Z][a-z]{2,15}$`),
		gen.RegexMatch(`^[A-Z]{2}$`),
		gen.Int64Range(2, 30*24*3600),
		gen.Int64Range(0, 999),
	))

	properties.TestingRun(t)
}
