package models

// SiteConfig is the fully composed, renderable configuration for one site.
type SiteConfig struct {
	Industry string    `json:"industry"`
	Brand    string    `json:"brand"`
	Logo     Logo      `json:"logo"`
	Hero     Hero      `json:"hero"`
	SEO      SEO       `json:"seo"`
	Services []Service `json:"services"`
	FAQs     []FAQ     `json:"faqs"`
	Theme    Theme     `json:"theme"`
	Contact  Contact   `json:"contact"`
}

type Logo struct {
	URL     string `json:"url,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Favicon string `json:"favicon,omitempty"`
}

type Hero struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	CTA      string `json:"cta,omitempty"`
	Image    string `json:"image,omitempty"`
}

type SEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	OGImage     string   `json:"og_image,omitempty"`
}

type Service struct {
	Slug        string `json:"slug"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

type Theme struct {
	Name         string            `json:"name"`
	CSSVariables map[string]string `json:"css_variables"`
}

type Contact struct {
	BusinessName string        `json:"business_name,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Email        string        `json:"email,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	ServiceAreas []ServiceArea `json:"service_areas,omitempty"`
}

// IndustryTemplate is the static default content for one industry vertical.
// Templates are shared by pointer and must never be mutated.
type IndustryTemplate struct {
	Industry  string
	Brand     string
	Logo      Logo
	Hero      Hero
	SEO       SEO
	Services  []Service
	FAQs      []FAQ
	ThemeName string
	Contact   Contact
}
