// Package classifier maps an inbound host, path and query to a resolution
// mode and identifier. Classification never fails; anything it does not
// recognise is the platform site.
package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/url"
	"strings"

	"github.com/nikhilbhutani/sitehost/internal/models"
)

// Query parameter names.
const (
	ParamToken    = "t"
	ParamTenantID = "tenant_id"
	ParamName     = "name"
	ParamPhone    = "phone"
	ParamCity     = "city"
	ParamState    = "state"
	ParamIndustry = "industry"
)

// PreviewParams are the fields a parameter preview must carry.
var PreviewParams = []string{ParamName, ParamPhone, ParamCity, ParamState, ParamIndustry}

// DefaultReserved are never treated as tenant slugs.
var DefaultReserved = []string{
	"www", "api", "admin", "staging", "dev",
	"main", "main-site", "tenant",
	"cdn", "assets", "static", "img", "images", "media",
	"mail", "email", "ftp", "blog", "support", "help",
	"docs", "status", "monitoring", "metrics", "logs",
}

const adminLabel = "admin"

type Options struct {
	BaseDomain    string
	Reserved      []string
	CustomDomains map[string]string
}

type Input struct {
	Host  string
	Path  string
	Query url.Values
}

type Classification struct {
	Mode       models.Mode
	Identifier string
	// Token is the unverified candidate for TokenPreview.
	Token string
	// ExpectedTenantID is the optional tenant_id assertion for TokenPreview.
	ExpectedTenantID string
	// Params holds the raw preview fields for ParamPreview.
	Params url.Values
	// Admin marks the platform admin surface.
	Admin bool
}

type Classifier struct {
	baseDomain    string
	stagingDomain string
	reserved      map[string]struct{}
	customDomains map[string]string
}

func New(opts Options) *Classifier {
	base := normalizeHost(opts.BaseDomain)
	c := &Classifier{
		baseDomain:    base,
		stagingDomain: "staging." + base,
		reserved:      make(map[string]struct{}),
		customDomains: make(map[string]string, len(opts.CustomDomains)),
	}
	for _, r := range DefaultReserved {
		c.reserved[r] = struct{}{}
	}
	for _, r := range opts.Reserved {
		c.reserved[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	// The platform's own bare domain label is never a tenant either.
	if first, _, ok := strings.Cut(base, "."); ok {
		c.reserved[first] = struct{}{}
	}
	for domain, slug := range opts.CustomDomains {
		c.customDomains[normalizeHost(domain)] = strings.ToLower(strings.TrimSpace(slug))
	}
	return c
}

func (c *Classifier) Classify(in Input) Classification {
	host := normalizeHost(in.Host)
	query := in.Query
	if query == nil {
		query = url.Values{}
	}

	if !isLoopback(host) {
		label, ok := c.subdomain(host)
		switch {
		case ok && label == adminLabel:
			return Classification{Mode: models.ModePlatform, Admin: true}
		case ok && !c.isReserved(label):
			return Classification{Mode: models.ModeLiveTenant, Identifier: label}
		}
		// Reserved labels fall through: previews are served from the
		// platform's own hosts.
		if slug, ok := c.customDomain(host); ok {
			return Classification{Mode: models.ModeLiveTenant, Identifier: slug}
		}
	}

	// A present but blank token still means a token preview; decoding
	// rejects it later.
	if query.Has(ParamToken) {
		return Classification{
			Mode:             models.ModeTokenPreview,
			Token:            strings.TrimSpace(query.Get(ParamToken)),
			ExpectedTenantID: strings.TrimSpace(query.Get(ParamTenantID)),
		}
	}

	if params, ok := previewParams(in.Path, query); ok {
		return Classification{
			Mode:       models.ModeParamPreview,
			Identifier: ParamKey(params),
			Params:     params,
		}
	}

	return Classification{Mode: models.ModePlatform}
}

// subdomain returns the first label of hosts directly under the base domain
// or its staging domain.
func (c *Classifier) subdomain(host string) (string, bool) {
	if c.baseDomain == "" {
		return "", false
	}
	for _, suffix := range []string{c.stagingDomain, c.baseDomain} {
		if rest, ok := strings.CutSuffix(host, "."+suffix); ok && rest != "" {
			label, _, _ := strings.Cut(rest, ".")
			if label == "" {
				return "", false
			}
			return label, true
		}
	}
	return "", false
}

func (c *Classifier) customDomain(host string) (string, bool) {
	if slug, ok := c.customDomains[host]; ok && slug != "" {
		return slug, true
	}
	if bare, ok := strings.CutPrefix(host, "www."); ok {
		if slug, ok := c.customDomains[bare]; ok && slug != "" {
			return slug, true
		}
	}
	return "", false
}

func (c *Classifier) isReserved(label string) bool {
	_, ok := c.reserved[label]
	return ok
}

// previewParams collects the param-preview fields. Presence of the key is
// what counts; empty values are reported later by validation. A path of the
// form /preview/<industry> supplies the industry when the query omits it.
func previewParams(path string, q url.Values) (url.Values, bool) {
	out := url.Values{}
	for _, k := range PreviewParams {
		if _, ok := q[k]; ok {
			out.Set(k, q.Get(k))
		}
	}
	if _, ok := out[ParamIndustry]; !ok {
		if ind := industryFromPath(path); ind != "" {
			out.Set(ParamIndustry, ind)
		}
	}
	return out, len(out) == len(PreviewParams)
}

func industryFromPath(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) >= 2 && segs[0] == "preview" {
		return segs[1]
	}
	return ""
}

// ParamKey derives the cache identifier for a parameter preview.
func ParamKey(params url.Values) string {
	h := sha256.New()
	for _, k := range PreviewParams {
		h.Write([]byte(strings.TrimSpace(params.Get(k))))
		h.Write([]byte{0x1f})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	return strings.TrimSuffix(host, ".")
}

func isLoopback(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || host == "0.0.0.0" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// IsLocalHost reports whether host (which may carry a port) is a loopback
// development host.
func IsLocalHost(host string) bool {
	return isLoopback(normalizeHost(host))
}
