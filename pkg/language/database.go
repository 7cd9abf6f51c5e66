package language

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"
)

// Reference table in the ISO 639-2 registry format: pipe-delimited rows of
// alpha-3 bibliographic code, alpha-3 terminologic code, alpha-2 code, English
// name(s) and French name(s). Names may carry "; "-separated synonyms.
//
//go:embed iso-639-2.txt
var isoTable []byte

// database holds the lookup indices built from the reference table. It is
// built once and never mutated afterwards, so it is safe to share across
// concurrent searches.
type database struct {
	alpha3     map[string]struct{} // bibliographic codes
	termToBib  map[string]string
	bibToTerm  map[string]string
	alpha2To3  map[string]string
	alpha3To2  map[string]string
	enNameTo3  map[string]string
	frNameTo3  map[string]string
	alpha3ToEn map[string]string // first english name only
	alpha3ToFr map[string]string // first french name only
	all        []string          // every known identifier, lowercased
}

var (
	dbOnce sync.Once
	dbInst *database
)

// db returns the shared language database, loading it on first use.
func db() *database {
	dbOnce.Do(func() {
		dbInst = parseTable(isoTable)
	})
	return dbInst
}

// parseTable builds the lookup indices from a pipe-delimited reference table.
// Rows with missing fields are tolerated; they are simply absent from the
// indices the missing fields would have fed.
func parseTable(table []byte) *database {
	d := &database{
		alpha3:     make(map[string]struct{}),
		termToBib:  make(map[string]string),
		bibToTerm:  make(map[string]string),
		alpha2To3:  make(map[string]string),
		alpha3To2:  make(map[string]string),
		enNameTo3:  make(map[string]string),
		frNameTo3:  make(map[string]string),
		alpha3ToEn: make(map[string]string),
		alpha3ToFr: make(map[string]string),
	}

	seen := make(map[string]struct{})
	addIdent := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		d.all = append(d.all, s)
	}

	scanner := bufio.NewScanner(bytes.NewReader(table))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 5 {
			continue
		}

		bib := strings.ToLower(strings.TrimSpace(fields[0]))
		term := strings.ToLower(strings.TrimSpace(fields[1]))
		a2 := strings.ToLower(strings.TrimSpace(fields[2]))

		if bib == "" {
			continue
		}

		d.alpha3[bib] = struct{}{}
		addIdent(bib)

		if term != "" {
			d.termToBib[term] = bib
			d.bibToTerm[bib] = term
			addIdent(term)
		}

		if a2 != "" {
			d.alpha2To3[a2] = bib
			d.alpha3To2[bib] = a2
			addIdent(a2)
		}

		for i, name := range strings.Split(fields[3], "; ") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if i == 0 {
				d.alpha3ToEn[bib] = name
			}
			d.enNameTo3[name] = bib
			addIdent(name)
		}

		for i, name := range strings.Split(fields[4], "; ") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if i == 0 {
				d.alpha3ToFr[bib] = name
			}
			d.frNameTo3[name] = bib
			addIdent(name)
		}
	}

	return d
}

// hasAlpha2 reports whether the bibliographic code has a 2-letter form.
// Identifiers without one are too obscure to be trusted in free text.
func (d *database) hasAlpha2(bib string) bool {
	_, ok := d.alpha3To2[bib]
	return ok
}
