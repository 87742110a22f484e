// Package industry is the registry of industry verticals and their static
// default site templates.
package industry

import "github.com/nikhilbhutani/sitehost/internal/models"

// Industry is a closed set of supported verticals. The zero value is not a
// valid industry.
type Industry int

const (
	unknown Industry = iota
	MobileDetailing
	MaidService
	LawnCare
	PetGrooming
	Barber

	count
)

var slugs = [count]string{
	MobileDetailing: "mobile-detailing",
	MaidService:     "maid-service",
	LawnCare:        "lawncare",
	PetGrooming:     "pet-grooming",
	Barber:          "barber",
}

// All returns every registered industry in declaration order.
func All() []Industry {
	out := make([]Industry, 0, count-1)
	for i := unknown + 1; i < count; i++ {
		out = append(out, i)
	}
	return out
}

// Parse maps a slug to its industry. Matching is exact and case-sensitive.
func Parse(slug string) (Industry, bool) {
	for i := unknown + 1; i < count; i++ {
		if slugs[i] == slug {
			return i, true
		}
	}
	return unknown, false
}

func (i Industry) Valid() bool {
	return i > unknown && i < count
}

func (i Industry) Slug() string {
	if !i.Valid() {
		return ""
	}
	return slugs[i]
}

func (i Industry) String() string {
	if s := i.Slug(); s != "" {
		return s
	}
	return "unknown"
}

// Template returns the shared, read-only template for i, or nil for an
// invalid industry.
func (i Industry) Template() *models.IndustryTemplate {
	if !i.Valid() {
		return nil
	}
	return &templates[i]
}
