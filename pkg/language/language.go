package language

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kasuboski/guessr/pkg/textutils"
)

// Language is a human language identified by its ISO 639-2 bibliographic
// code, optionally qualified with a country (eg. Brazilian Portuguese).
// Build one with Parse; the zero value is not a valid language.
type Language struct {
	code    string // alpha-3 bibliographic, always set for parsed values
	country *Country
}

var withCountryRegex = regexp.MustCompile(`^(.*)\((.*)\)$`)

// codes absent from the ISO table but seen in the wild
var exceptions = map[string]string{
	"gr": "gre",
}

// Parse builds a Language from any supported identifier form: a 2-letter
// code, a 3-letter code (bibliographic or terminologic), an English or French
// name, or a "name(country)" qualified form.
func Parse(s string) (Language, error) {
	if m := withCountryRegex.FindStringSubmatch(s); m != nil {
		lang, err := Parse(m[1])
		if err != nil {
			return Language{}, err
		}
		country, err := ParseCountry(m[2])
		if err != nil {
			return Language{}, err
		}
		lang.country = &country
		return lang, nil
	}

	d := db()
	ident := strings.ToLower(strings.TrimSpace(s))

	var code string
	switch len(ident) {
	case 2:
		code = d.alpha2To3[ident]
	case 3:
		if _, ok := d.alpha3[ident]; ok {
			code = ident
		} else {
			code = d.termToBib[ident]
		}
	default:
		code = d.enNameTo3[ident]
		if code == "" {
			code = d.frNameTo3[ident]
		}
	}

	if code == "" {
		code = exceptions[ident]
	}

	if code == "" {
		return Language{}, fmt.Errorf("%q could not be identified as a language", s)
	}

	return Language{code: code}, nil
}

// Alpha3 returns the canonical bibliographic 3-letter code.
func (l Language) Alpha3() string {
	return l.code
}

// Alpha3Term returns the terminologic 3-letter code, or the bibliographic
// code when the language has no distinct terminologic form.
func (l Language) Alpha3Term() string {
	if term, ok := db().bibToTerm[l.code]; ok {
		return term
	}
	return l.code
}

// Alpha2 returns the 2-letter code, or the empty string when the language has
// none.
func (l Language) Alpha2() string {
	return db().alpha3To2[l.code]
}

// EnglishName returns the first English name from the reference table.
func (l Language) EnglishName() string {
	return db().alpha3ToEn[l.code]
}

// FrenchName returns the first French name from the reference table.
func (l Language) FrenchName() string {
	return db().alpha3ToFr[l.code]
}

// Country returns the country qualifier, or nil when there is none.
func (l Language) Country() *Country {
	return l.country
}

// Equal reports whether two languages share the same canonical code. Country
// qualifiers do not participate in identity.
func (l Language) Equal(other Language) bool {
	return l.code == other.code
}

// Matches reports whether the raw identifier names this language. An
// identifier that fails to parse does not match; it is not an error.
func (l Language) Matches(ident string) bool {
	other, err := Parse(ident)
	if err != nil {
		return false
	}
	return l.Equal(other)
}

// MarshalJSON renders the language as its display form, eg. "English" or
// "Portuguese(br)".
func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l Language) String() string {
	name := textutils.TitleCase(l.EnglishName())
	if l.country != nil {
		return fmt.Sprintf("%s(%s)", name, l.country.Alpha2())
	}
	return name
}
