// Package compose builds a renderable SiteConfig by merging tenant or preview
// overrides over industry template defaults.
package compose

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/nikhilbhutani/sitehost/internal/industry"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/preview"
	"github.com/nikhilbhutani/sitehost/internal/theme"
)

// Source is everything the composer needs for one resolution. Only the
// fields matching Mode are read.
type Source struct {
	Mode       models.Mode
	Identifier string
	Admin      bool
	Tenant     *models.Tenant
	Preview    *models.PreviewPayload
	Params     url.Values
}

// overlay is the mode-independent shape of the data merged over a template.
type overlay struct {
	content models.ContentOverrides
	contact models.Contact
}

// Composer is pure: it performs no I/O and reads no clock.
type Composer struct {
	themes *theme.Resolver
}

func New(themes *theme.Resolver) *Composer {
	if themes == nil {
		themes = theme.Default()
	}
	return &Composer{themes: themes}
}

// Compose produces the SiteConfig and ResolutionContext for src.
func (c *Composer) Compose(src Source) (models.SiteConfig, models.ResolutionContext, error) {
	rc := models.ResolutionContext{
		Mode:       src.Mode,
		Identifier: src.Identifier,
		IsPreview:  src.Mode.IsPreview(),
		Admin:      src.Admin,
	}

	switch src.Mode {
	case models.ModePlatform:
		rc.Identifier = ""
		return c.platform(), rc, nil

	case models.ModeLiveTenant:
		t := src.Tenant
		if t == nil {
			return models.SiteConfig{}, rc, models.ErrTenantNotFound
		}
		switch {
		case t.Status == models.TenantSuspended:
			return models.SiteConfig{}, rc, models.ErrTenantSuspended
		case !t.Status.Live():
			return models.SiteConfig{}, rc, models.ErrTenantNotFound
		}
		rc.TenantID = t.ID.String()

		ind, ok := industry.Parse(t.Industry)
		if !ok {
			verr := &models.ValidationError{}
			verr.Add("industry", "unknown industry "+t.Industry)
			return models.SiteConfig{}, rc, verr
		}
		rc.Industry = ind.Slug()
		return c.merge(ind, tenantOverlay(t)), rc, nil

	case models.ModeTokenPreview, models.ModeParamPreview:
		p, err := previewPayload(src)
		if err != nil {
			return models.SiteConfig{}, rc, err
		}
		ind, _ := industry.Parse(p.Industry)
		rc.Industry = ind.Slug()
		rc.TenantID = p.TenantID
		return c.merge(ind, previewOverlay(p)), rc, nil
	}

	return models.SiteConfig{}, rc, fmt.Errorf("compose: unknown mode %q", src.Mode)
}

func previewPayload(src Source) (models.PreviewPayload, error) {
	if src.Mode == models.ModeParamPreview {
		return preview.FromParams(src.Params)
	}
	if src.Preview == nil {
		return models.PreviewPayload{}, models.ErrInvalidSignature
	}
	return preview.Validate(*src.Preview)
}

func tenantOverlay(t *models.Tenant) overlay {
	contact := models.Contact{
		BusinessName: t.BusinessName,
		Phone:        t.Phone,
		Email:        t.Email,
		ServiceAreas: t.ServiceAreas,
	}
	if primary, ok := primaryArea(t.ServiceAreas); ok {
		contact.City = primary.City
		contact.State = primary.State
	}
	return overlay{content: t.Content, contact: contact}
}

// previewOverlay shows the prospect's business name as the brand so the demo
// reads as their own site.
func previewOverlay(p models.PreviewPayload) overlay {
	return overlay{
		content: models.ContentOverrides{Brand: p.BusinessName},
		contact: models.Contact{
			BusinessName: p.BusinessName,
			Phone:        p.Phone,
			City:         p.City,
			State:        p.State,
		},
	}
}

func primaryArea(areas []models.ServiceArea) (models.ServiceArea, bool) {
	if i := slices.IndexFunc(areas, func(a models.ServiceArea) bool { return a.Primary }); i >= 0 {
		return areas[i], true
	}
	if len(areas) > 0 {
		return areas[0], true
	}
	return models.ServiceArea{}, false
}

func (c *Composer) merge(ind industry.Industry, o overlay) models.SiteConfig {
	tpl := ind.Template()
	return models.SiteConfig{
		Industry: tpl.Industry,
		Brand:    pick(tpl.Brand, o.content.Brand),
		Logo:     mergeLogo(tpl.Logo, o.content.Logo),
		Hero:     mergeHero(tpl.Hero, o.content.Hero),
		SEO:      mergeSEO(tpl.SEO, o.content.SEO),
		Services: mergeServices(tpl.Services, o.content.Services),
		FAQs:     mergeFAQs(tpl.FAQs, o.content.FAQs),
		Theme:    c.themes.Resolve(o.content.ThemeName, ind),
		Contact:  mergeContact(tpl.Contact, o.contact),
	}
}
