package textutils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filler is the sentinel substituted for consumed characters so that span
// arithmetic over the original string stays valid after a claim.
const Filler = '_'

// separator characters commonly found in release filenames
const separators = " .-_/\\+"

// CleanString strips filler and bracket characters, converts filename
// punctuation to spaces and collapses the result. The output is what leftover
// validity checks and positional guesses operate on.
func CleanString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == Filler:
			b.WriteRune(' ')
		case strings.ContainsRune(separators, r):
			b.WriteRune(' ')
		case strings.ContainsRune("[](){}", r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleCase normalizes a cleaned value for presentation.
func TitleCase(s string) string {
	caser := cases.Title(language.English)
	return strings.TrimSpace(caser.String(s))
}

// FillerString returns a filler run of the given length.
func FillerString(n int) string {
	return strings.Repeat(string(Filler), n)
}
