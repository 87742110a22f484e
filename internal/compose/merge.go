package compose

import (
	"strings"

	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/pkg/phone"
)

// Every merge function takes the template value as base and replaces a leaf
// only when the override leaf is non-blank. Results never alias the template,
// which is shared by every tenant of the industry.

func pick(base, over string) string {
	if strings.TrimSpace(over) != "" {
		return strings.TrimSpace(over)
	}
	return base
}

func mergeLogo(base, over models.Logo) models.Logo {
	return models.Logo{
		URL:     pick(base.URL, over.URL),
		Alt:     pick(base.Alt, over.Alt),
		Favicon: pick(base.Favicon, over.Favicon),
	}
}

func mergeHero(base, over models.Hero) models.Hero {
	return models.Hero{
		Title:    pick(base.Title, over.Title),
		Subtitle: pick(base.Subtitle, over.Subtitle),
		CTA:      pick(base.CTA, over.CTA),
		Image:    pick(base.Image, over.Image),
	}
}

func mergeSEO(base, over models.SEO) models.SEO {
	return models.SEO{
		Title:       pick(base.Title, over.Title),
		Description: pick(base.Description, over.Description),
		Keywords:    mergeKeywords(base.Keywords, over.Keywords),
		OGImage:     pick(base.OGImage, over.OGImage),
	}
}

// mergeKeywords appends override keywords to the defaults, dropping blanks
// and case-insensitive duplicates.
func mergeKeywords(base, over []string) []string {
	out := make([]string, 0, len(base)+len(over))
	seen := make(map[string]struct{}, len(base)+len(over))
	for _, list := range [][]string{base, over} {
		for _, k := range list {
			k = strings.TrimSpace(k)
			key := strings.ToLower(k)
			if k == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// mergeServices merges by slug. Overrides for an existing slug are applied
// leaf by leaf; new slugs are appended only when they are renderable.
func mergeServices(base, over []models.Service) []models.Service {
	out := make([]models.Service, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.Slug] = i
	}
	for _, o := range over {
		slug := strings.TrimSpace(o.Slug)
		if slug == "" {
			continue
		}
		if i, ok := index[slug]; ok {
			out[i] = models.Service{
				Slug:        slug,
				Title:       pick(out[i].Title, o.Title),
				Description: pick(out[i].Description, o.Description),
				Icon:        pick(out[i].Icon, o.Icon),
			}
			continue
		}
		if strings.TrimSpace(o.Title) == "" || strings.TrimSpace(o.Description) == "" {
			continue
		}
		index[slug] = len(out)
		out = append(out, models.Service{
			Slug:        slug,
			Title:       strings.TrimSpace(o.Title),
			Description: strings.TrimSpace(o.Description),
			Icon:        pick("star", o.Icon),
		})
	}
	return out
}

// mergeFAQs merges by id with the same rules as mergeServices.
func mergeFAQs(base, over []models.FAQ) []models.FAQ {
	out := make([]models.FAQ, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.ID] = i
	}
	for _, o := range over {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			continue
		}
		if i, ok := index[id]; ok {
			out[i] = models.FAQ{
				ID:       id,
				Question: pick(out[i].Question, o.Question),
				Answer:   pick(out[i].Answer, o.Answer),
			}
			continue
		}
		if strings.TrimSpace(o.Question) == "" || strings.TrimSpace(o.Answer) == "" {
			continue
		}
		index[id] = len(out)
		out = append(out, models.FAQ{
			ID:       id,
			Question: strings.TrimSpace(o.Question),
			Answer:   strings.TrimSpace(o.Answer),
		})
	}
	return out
}

func mergeContact(base, over models.Contact) models.Contact {
	c := models.Contact{
		BusinessName: pick(base.BusinessName, over.BusinessName),
		Phone:        phone.Format(pick(base.Phone, over.Phone)),
		Email:        pick(base.Email, over.Email),
		City:         pick(base.City, over.City),
		State:        pick(base.State, over.State),
	}

	for _, a := range over.ServiceAreas {
		if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.State) == "" {
			continue
		}
		c.ServiceAreas = append(c.ServiceAreas, models.ServiceArea{
			City:    strings.TrimSpace(a.City),
			State:   strings.TrimSpace(a.State),
			Primary: a.Primary,
		})
	}
	if len(c.ServiceAreas) == 0 {
		c.ServiceAreas = []models.ServiceArea{{City: c.City, State: c.State, Primary: true}}
	}
	return c
}
