package compose

import (
	"github.com/nikhilbhutani/sitehost/internal/industry"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/theme"
)

// platform returns the marketing site config. Its service grid lists every
// registered industry.
func (c *Composer) platform() models.SiteConfig {
	all := industry.All()
	services := make([]models.Service, 0, len(all))
	for _, ind := range all {
		tpl := ind.Template()
		services = append(services, models.Service{
			Slug:        ind.Slug(),
			Title:       tpl.Brand,
			Description: tpl.SEO.Description,
			Icon:        tpl.Services[0].Icon,
		})
	}

	return models.SiteConfig{
		Industry: theme.PlatformTheme,
		Brand:    "That Smart Site",
		Logo: models.Logo{
			URL:     "/platform/icons/logo.svg",
			Alt:     "That Smart Site logo",
			Favicon: "/platform/icons/favicon.ico",
		},
		Hero: models.Hero{
			Title:    "A Website That Works As Hard As You Do",
			Subtitle: "Launch a fast, professional site for your local service business in minutes.",
			CTA:      "See Your Free Preview",
			Image:    "/platform/hero/hero.webp",
		},
		SEO: models.SEO{
			Title:       "That Smart Site | Websites for Local Service Businesses",
			Description: "Done-for-you websites for detailers, cleaners, groomers, barbers and lawn care pros.",
			Keywords:    []string{"small business website", "local service website", "website builder"},
			OGImage:     "/platform/og.webp",
		},
		Services: services,
		FAQs: []models.FAQ{
			{ID: "cost", Question: "How much does it cost?", Answer: "One flat monthly price with hosting, updates and support included."},
			{ID: "domain", Question: "Can I use my own domain?", Answer: "Yes. Point your domain at us and we handle the certificate."},
			{ID: "preview", Question: "Can I see my site before I sign up?", Answer: "Yes. Ask for a free preview link built with your business details."},
		},
		Theme: c.themes.Resolve(theme.PlatformTheme, 0),
		Contact: models.Contact{
			BusinessName: "That Smart Site",
			Phone:        "(555) 010-0100",
			Email:        "hello@thatsmartsite.com",
			City:         "Las Vegas",
			State:        "NV",
			ServiceAreas: []models.ServiceArea{{City: "Las Vegas", State: "NV", Primary: true}},
		},
	}
}
