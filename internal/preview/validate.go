package preview

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/industry"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/pkg/phone"
)

const (
	minNameLen = 2
	maxNameLen = 100
	minCityLen = 2
	maxCityLen = 50
)

var titleCase = cases.Title(language.English)

// Validate checks a payload against the preview schema and returns a
// normalised copy. Every failing field is reported.
func Validate(p models.PreviewPayload) (models.PreviewPayload, error) {
	verr := &models.ValidationError{}
	out := p

	out.BusinessName = strings.TrimSpace(p.BusinessName)
	switch n := utf8.RuneCountInString(out.BusinessName); {
	case n == 0:
		verr.Add("name", "required")
	case n < minNameLen || n > maxNameLen:
		verr.Add("name", "must be between 2 and 100 characters")
	}

	if strings.TrimSpace(p.Phone) == "" {
		verr.Add("phone", "required")
	} else if d, ok := phone.Digits(p.Phone); !ok {
		verr.Add("phone", "must be a 10-digit phone number")
	} else {
		out.Phone = d
	}

	city := strings.Join(strings.Fields(p.City), " ")
	switch n := utf8.RuneCountInString(city); {
	case n == 0:
		verr.Add("city", "required")
	case n < minCityLen || n > maxCityLen:
		verr.Add("city", "must be between 2 and 50 characters")
	default:
		out.City = titleCase.String(city)
	}

	state := strings.ToUpper(strings.TrimSpace(p.State))
	switch {
	case state == "":
		verr.Add("state", "required")
	case !isStateCode(state):
		verr.Add("state", "must be a two-letter state code")
	default:
		out.State = state
	}

	if p.Industry == "" {
		verr.Add("industry", "required")
	} else if _, ok := industry.Parse(p.Industry); !ok {
		verr.Add("industry", "unknown industry "+p.Industry)
	}

	if err := verr.OrNil(); err != nil {
		return models.PreviewPayload{}, err
	}
	return out, nil
}

// FromParams builds and validates a payload from raw query parameters.
func FromParams(q url.Values) (models.PreviewPayload, error) {
	return Validate(models.PreviewPayload{
		BusinessName: q.Get(classifier.ParamName),
		Phone:        q.Get(classifier.ParamPhone),
		City:         q.Get(classifier.ParamCity),
		State:        q.Get(classifier.ParamState),
		Industry:     q.Get(classifier.ParamIndustry),
	})
}

func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
