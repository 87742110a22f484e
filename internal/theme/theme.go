// Package theme loads named CSS-variable sets for site rendering.
package theme

import (
	_ "embed"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/nikhilbhutani/sitehost/internal/industry"
	"github.com/nikhilbhutani/sitehost/internal/models"
)

// PlatformTheme is used by the platform marketing site.
const PlatformTheme = "platform"

//go:embed themes.yaml
var builtin []byte

type Resolver struct {
	themes map[string]map[string]string
}

// NewResolver parses a YAML document mapping theme names to CSS variables.
// The document must define the platform theme and every industry default.
func NewResolver(doc []byte) (*Resolver, error) {
	themes := map[string]map[string]string{}
	if err := yaml.Unmarshal(doc, &themes); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}
	for name, vars := range themes {
		if len(vars) == 0 {
			return nil, fmt.Errorf("theme %q has no variables", name)
		}
	}
	r := &Resolver{themes: themes}
	if !r.Has(PlatformTheme) {
		return nil, fmt.Errorf("theme %q is required", PlatformTheme)
	}
	for _, i := range industry.All() {
		if name := i.Template().ThemeName; !r.Has(name) {
			return nil, fmt.Errorf("theme %q for industry %s is missing", name, i)
		}
	}
	return r, nil
}

// Default returns a resolver over the built-in theme table.
func Default() *Resolver {
	r, err := NewResolver(builtin)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolver) Has(name string) bool {
	_, ok := r.themes[name]
	return ok
}

// Resolve returns the named theme, falling back to the industry's default
// theme and then to the platform theme. The returned variables are a copy.
func (r *Resolver) Resolve(name string, fallback industry.Industry) models.Theme {
	if vars, ok := r.themes[name]; ok {
		return models.Theme{Name: name, CSSVariables: maps.Clone(vars)}
	}
	if tpl := fallback.Template(); tpl != nil {
		if vars, ok := r.themes[tpl.ThemeName]; ok {
			return models.Theme{Name: tpl.ThemeName, CSSVariables: maps.Clone(vars)}
		}
	}
	return models.Theme{Name: PlatformTheme, CSSVariables: maps.Clone(r.themes[PlatformTheme])}
}
