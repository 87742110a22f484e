package classifier

import (
	"net/url"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

func newTestClassifier() *Classifier {
	return New(Options{
		BaseDomain: "platform.test",
		Reserved:   []string{"partners"},
		CustomDomains: map[string]string{
			"mydetailing.com": "acme",
			"Shiny.Example.":  "Shiny",
		},
	})
}

func query(s string) url.Values {
	q, _ := url.ParseQuery(s)
	return q
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name       string
		in         Input
		mode       models.Mode
		identifier string
		admin      bool
	}{
		{"tenant subdomain", Input{Host: "acme.platform.test"}, models.ModeLiveTenant, "acme", false},
		{"tenant subdomain with port", Input{Host: "ACME.platform.test:8443"}, models.ModeLiveTenant, "acme", false},
		{"staging tenant", Input{Host: "acme.staging.platform.test"}, models.ModeLiveTenant, "acme", false},
		{"bare domain", Input{Host: "platform.test"}, models.ModePlatform, "", false},
		{"www", Input{Host: "www.platform.test"}, models.ModePlatform, "", false},
		{"admin", Input{Host: "admin.platform.test"}, models.ModePlatform, "", true},
		{"api", Input{Host: "api.platform.test"}, models.ModePlatform, "", false},
		{"configured reserved", Input{Host: "partners.platform.test"}, models.ModePlatform, "", false},
		{"base label", Input{Host: "platform.platform.test"}, models.ModePlatform, "", false},
		{"staging host", Input{Host: "staging.platform.test"}, models.ModePlatform, "", false},
		{"custom domain", Input{Host: "mydetailing.com"}, models.ModeLiveTenant, "acme", false},
		{"custom domain www", Input{Host: "www.mydetailing.com"}, models.ModeLiveTenant, "acme", false},
		{"custom domain normalised", Input{Host: "shiny.example"}, models.ModeLiveTenant, "shiny", false},
		{"unknown foreign host", Input{Host: "random.example.org"}, models.ModePlatform, "", false},
		{"empty host", Input{}, models.ModePlatform, "", false},
		{"localhost", Input{Host: "localhost:5173"}, models.ModePlatform, "", false},
		{"localhost subdomain skips tenant", Input{Host: "acme.localhost"}, models.ModePlatform, "", false},
		{"loopback v6", Input{Host: "[::1]:8080"}, models.ModePlatform, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.in)
			assert.Equal(t, tt.mode, got.Mode)
			assert.Equal(t, tt.identifier, got.Identifier)
			assert.Equal(t, tt.admin, got.Admin)
		})
	}
}

func TestAdminReservedEvenWithToken(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(Input{Host: "admin.platform.test", Query: query("t=abc")})
	assert.Equal(t, models.ModePlatform, got.Mode)
	assert.True(t, got.Admin)
}

func TestTenantHostIgnoresPreviewParams(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(Input{Host: "acme.platform.test", Query: query("t=abc")})
	assert.Equal(t, models.ModeLiveTenant, got.Mode)
	assert.Empty(t, got.Token)
}

func TestTokenPreview(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify(Input{Host: "localhost", Query: query("t=tok123&tenant_id=abc")})
	assert.Equal(t, models.ModeTokenPreview, got.Mode)
	assert.Equal(t, "tok123", got.Token)
	assert.Equal(t, "abc", got.ExpectedTenantID)

	// served from the marketing host too
	got = c.Classify(Input{Host: "www.platform.test", Query: query("t=tok123")})
	assert.Equal(t, models.ModeTokenPreview, got.Mode)
}

func TestTokenWinsOverParams(t *testing.T) {
	c := newTestClassifier()
	q := query("t=tok&name=Acme&phone=5551234567&city=Reno&state=NV&industry=maid-service")
	got := c.Classify(Input{Host: "localhost", Query: q})
	assert.Equal(t, models.ModeTokenPreview, got.Mode)
}

func TestBlankTokenStillMeansTokenPreview(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(Input{Host: "localhost", Query: query("t=")})
	assert.Equal(t, models.ModeTokenPreview, got.Mode)
	assert.Empty(t, got.Token)

	q := query("t=&name=Acme&phone=5551234567&city=Reno&state=NV&industry=maid-service")
	got = c.Classify(Input{Host: "www.platform.test", Query: q})
	assert.Equal(t, models.ModeTokenPreview, got.Mode)
	assert.Empty(t, got.Params)
}

func TestParamPreview(t *testing.T) {
	c := newTestClassifier()
	q := query("name=Acme+Cleaning&phone=5551234567&city=Reno&state=NV&industry=maid-service")

	got := c.Classify(Input{Host: "localhost:3000", Query: q})
	assert.Equal(t, models.ModeParamPreview, got.Mode)
	assert.Len(t, got.Identifier, 16)
	assert.Equal(t, "Acme Cleaning", got.Params.Get(ParamName))

	again := c.Classify(Input{Host: "localhost:3000", Query: q})
	assert.Equal(t, got.Identifier, again.Identifier)

	q.Set(ParamCity, "Sparks")
	other := c.Classify(Input{Host: "localhost:3000", Query: q})
	assert.NotEqual(t, got.Identifier, other.Identifier)
}

func TestParamPreviewNeedsAllKeys(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(Input{Host: "localhost", Query: query("name=Acme&phone=5551234567&city=Reno&state=NV")})
	assert.Equal(t, models.ModePlatform, got.Mode)

	// keys present with empty values still select the mode; validation reports them
	got = c.Classify(Input{Host: "localhost", Query: query("name=&phone=&city=&state=&industry=")})
	assert.Equal(t, models.ModeParamPreview, got.Mode)
}

func TestParamPreviewIndustryFromPath(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(Input{
		Host:  "localhost",
		Path:  "/preview/lawncare",
		Query: query("name=Acme&phone=5551234567&city=Reno&state=NV"),
	})
	assert.Equal(t, models.ModeParamPreview, got.Mode)
	assert.Equal(t, "lawncare", got.Params.Get(ParamIndustry))
}

func TestReservedNeverLiveProperty(t *testing.T) {
	c := newTestClassifier()
	properties := gopter.NewProperties(nil)

	properties.Property("reserved subdomains never classify as tenants", prop.ForAll(
		func(label string) bool {
			got := c.Classify(Input{Host: label + ".platform.test"})
			return got.Mode == models.ModePlatform
		},
		gen.OneConstOf("www", "api", "admin", "staging", "dev", "cdn", "docs", "partners"),
	))

	properties.Property("non-reserved subdomains classify as that tenant", prop.ForAll(
		func(label string) bool {
			if c.isReserved(label) {
				return true
			}
			got := c.Classify(Input{Host: label + ".platform.test"})
			return got.Mode == models.ModeLiveTenant && got.Identifier == label
		},
		gen.RegexMatch(`^[a-z][a-z0-9-]{0,20}$`),
	))

	properties.Property("classification never panics", prop.ForAll(
		func(host, raw string) bool {
			q, _ := url.ParseQuery(raw)
			got := c.Classify(Input{Host: host, Query: q})
			return got.Mode.Valid()
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestIsLocalHost(t *testing.T) {
	assert.True(t, IsLocalHost("localhost:5173"))
	assert.True(t, IsLocalHost("127.0.0.1:8080"))
	assert.True(t, IsLocalHost("[::1]:8080"))
	assert.True(t, IsLocalHost("acme.localhost"))
	assert.False(t, IsLocalHost("acme.platform.test"))
	assert.False(t, IsLocalHost(""))
}
