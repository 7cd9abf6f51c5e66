package language

import (
	"fmt"
	"strings"
)

// Match is a language occurrence found in free text.
type Match struct {
	Language   Language
	Start, End int // half-open span into the searched text
	Confidence float64
}

// common words that collide with language identifiers; in the middle of a
// filename they almost always carry their everyday meaning
var commonWords = map[string]struct{}{
	// english
	"is": {}, "it": {}, "am": {}, "mad": {}, "men": {}, "man": {}, "run": {},
	"sin": {}, "st": {}, "to": {}, "no": {}, "non": {}, "war": {}, "min": {},
	"new": {}, "car": {}, "day": {}, "bad": {}, "bat": {}, "fan": {},
	"fry": {}, "cop": {}, "zen": {}, "gay": {}, "fat": {}, "cherokee": {},
	"got": {}, "an": {}, "as": {}, "cat": {}, "her": {}, "be": {}, "hat": {},
	"sun": {}, "may": {}, "my": {}, "mr": {},
	// french
	"bas": {}, "de": {}, "le": {}, "son": {}, "vo": {}, "vf": {}, "ne": {},
	"ca": {}, "ce": {}, "et": {}, "que": {}, "mal": {}, "est": {}, "vol": {},
	"or": {}, "mon": {}, "se": {},
	// spanish
	"la": {}, "el": {}, "del": {}, "por": {}, "mar": {},
	// other
	"ind": {}, "arw": {}, "ts": {}, "ii": {}, "bin": {}, "chan": {},
	"ss": {}, "san": {}, "oss": {}, "iii": {}, "vi": {},
}

const searchSeparators = "[](){} \\._-+"

// Search scans free text for a language token. Optional allowed identifiers
// restrict which languages qualify; an allowed entry that is not itself a
// valid language identifier is an error.
//
// When several identifiers could match, the winner is deterministic: leftmost
// match position first, then longest identifier, then highest confidence
// class (3-letter code beats 2-letter code beats full name). Identifiers
// without a 2-letter form are skipped as likely false positives. A match
// yields confidence 0.8 for a 2-letter code, 0.9 for a 3-letter code and 0.3
// for a full name. No qualifying token found yields nil.
func Search(text string, allowed ...string) (*Match, error) {
	var filter []Language
	for _, a := range allowed {
		lang, err := Parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid language filter: %w", err)
		}
		filter = append(filter, lang)
	}

	d := db()
	padded := " " + strings.ToLower(text) + " "

	var best *Match
	for _, ident := range d.all {
		if _, common := commonWords[ident]; common {
			continue
		}

		pos := findBounded(padded, ident)
		if pos == -1 {
			continue
		}

		lang, err := Parse(ident)
		if err != nil {
			continue
		}

		if filter != nil && !containsLanguage(filter, lang) {
			continue
		}

		// languages without a 2-letter code are too esoteric to trust
		if !d.hasAlpha2(lang.code) {
			continue
		}

		var confidence float64
		switch len(ident) {
		case 2:
			confidence = 0.8
		case 3:
			confidence = 0.9
		default:
			// full names are common words more often than languages
			confidence = 0.3
		}

		m := &Match{
			Language:   lang,
			Start:      pos - 1,
			End:        pos - 1 + len(ident),
			Confidence: confidence,
		}
		if better(m, best, ident) {
			best = m
		}
	}

	return best, nil
}

// findBounded returns the first occurrence of ident in padded that is
// surrounded by separators on both sides, or -1.
func findBounded(padded, ident string) int {
	for from := 0; ; {
		i := strings.Index(padded[from:], ident)
		if i == -1 {
			return -1
		}
		pos := from + i
		end := pos + len(ident)
		if pos > 0 && end < len(padded) &&
			strings.ContainsRune(searchSeparators, rune(padded[pos-1])) &&
			strings.ContainsRune(searchSeparators, rune(padded[end])) {
			return pos
		}
		from = pos + 1
	}
}

// better applies the documented tie-break between a candidate and the current
// best: leftmost start, then longest identifier, then confidence.
func better(candidate *Match, best *Match, ident string) bool {
	if best == nil {
		return true
	}
	if candidate.Start != best.Start {
		return candidate.Start < best.Start
	}
	if len(ident) != best.End-best.Start {
		return len(ident) > best.End-best.Start
	}
	return candidate.Confidence > best.Confidence
}

func containsLanguage(langs []Language, l Language) bool {
	for _, candidate := range langs {
		if candidate.Equal(l) {
			return true
		}
	}
	return false
}
