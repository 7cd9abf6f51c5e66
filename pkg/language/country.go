package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

// Country qualifies a language for a specific region. Only display uses it;
// language identity never does.
type Country struct {
	alpha2 string
	name   string
}

// curated ISO 3166 subset; qualifiers in filenames rarely go beyond these
var countries = []Country{
	{"ar", "argentina"},
	{"at", "austria"},
	{"au", "australia"},
	{"be", "belgium"},
	{"br", "brazil"},
	{"ca", "canada"},
	{"ch", "switzerland"},
	{"cn", "china"},
	{"cz", "czechia"},
	{"de", "germany"},
	{"dk", "denmark"},
	{"es", "spain"},
	{"fi", "finland"},
	{"fr", "france"},
	{"gb", "united kingdom"},
	{"gr", "greece"},
	{"hk", "hong kong"},
	{"ie", "ireland"},
	{"il", "israel"},
	{"in", "india"},
	{"it", "italy"},
	{"jp", "japan"},
	{"kr", "south korea"},
	{"mx", "mexico"},
	{"nl", "netherlands"},
	{"no", "norway"},
	{"nz", "new zealand"},
	{"pl", "poland"},
	{"pt", "portugal"},
	{"ru", "russia"},
	{"se", "sweden"},
	{"tr", "turkey"},
	{"tw", "taiwan"},
	{"ua", "ukraine"},
	{"us", "united states"},
	{"za", "south africa"},
}

// ParseCountry builds a Country from a 2-letter code or an English name.
func ParseCountry(s string) (Country, error) {
	ident := strings.ToLower(strings.TrimSpace(s))
	for _, c := range countries {
		if ident == c.alpha2 || ident == c.name {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("%q could not be identified as a country", s)
}

// Alpha2 returns the 2-letter country code.
func (c Country) Alpha2() string {
	return c.alpha2
}

// EnglishName returns the country's English name.
func (c Country) EnglishName() string {
	return cases.Title(xlang.English).String(c.name)
}

func (c Country) String() string {
	return c.EnglishName()
}
