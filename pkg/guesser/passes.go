package guesser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kasuboski/guessr/pkg/language"
	"github.com/kasuboski/guessr/pkg/matchtree"
)

// DefaultPasses returns the standard pass catalog in pipeline order. Earlier
// passes claim first; the per-property guard makes later passes for the same
// property no-ops.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "container", Weight: 1.0, Match: matchContainer},
		{Name: "episodes", Weight: 1.0, Match: matchEpisodes},
		{Name: "website", Weight: 1.0, Match: matchWebsite},
		{Name: "year", Weight: 1.0, Match: matchYear},
		{Name: "properties", Weight: 1.0, Match: matchProperties},
		{Name: "language", Weight: 1.0, Match: matchLanguage},
		{Name: "weakEpisodes", Weight: 1.0, Match: matchWeakEpisodes},
	}
}

var videoExtensions = []string{"mp4", "avi", "mkv", "m4v", "iso", "m2ts", "mov", "wmv", "mpg", "mpeg", "ogm", "divx"}
var subtitleExtensions = []string{"srt", "sub", "idx", "ssa", "ass", "vtt"}

// matchContainer claims the extension path part when it is a known media
// extension.
func matchContainer(t *matchtree.Tree, pos matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("extension") {
		return nil, 0, matchtree.Span{}, false
	}
	if pos.Path != t.PathParts()-1 {
		return nil, 0, matchtree.Span{}, false
	}

	ext := strings.ToLower(strings.TrimSpace(remaining))
	for _, known := range append(append([]string{}, videoExtensions...), subtitleExtensions...) {
		if ext == known {
			props := map[string]any{"extension": ext, "container": ext}
			return props, 1.0, matchtree.Span{Start: 0, End: len(remaining)}, true
		}
	}
	return nil, 0, matchtree.Span{}, false
}

var episodePatterns = []struct {
	re         *regexp.Regexp
	confidence float64
}{
	{regexp.MustCompile(`(?i)\bs(?P<season>\d{1,2})[ ._-]?e(?P<episodeNumber>\d{1,3})\b`), 1.0},
	{regexp.MustCompile(`(?i)\b(?P<season>\d{1,2})x(?P<episodeNumber>\d{1,3})\b`), 0.8},
}

// matchEpisodes recognizes explicit season/episode markers such as S01E02 and
// 1x02.
func matchEpisodes(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("episodeNumber") {
		return nil, 0, matchtree.Span{}, false
	}

	for _, p := range episodePatterns {
		loc := p.re.FindStringSubmatchIndex(remaining)
		if loc == nil {
			continue
		}
		season := submatch(p.re, remaining, loc, "season")
		episode := submatch(p.re, remaining, loc, "episodeNumber")
		s, err := strconv.Atoi(season)
		if err != nil {
			continue
		}
		e, err := strconv.Atoi(episode)
		if err != nil {
			continue
		}
		props := map[string]any{"season": s, "episodeNumber": e}
		return props, p.confidence, matchtree.Span{Start: loc[0], End: loc[1]}, true
	}
	return nil, 0, matchtree.Span{}, false
}

// weakEpisodePatterns are tried in priority order; the first match wins and
// later patterns are never consulted. The adjust pair trims the boundary
// characters the pattern had to consume.
var weakEpisodePatterns = []struct {
	re     *regexp.Regexp
	adjust [2]int
}{
	{regexp.MustCompile(`[^0-9](?P<episodeNumber>[0-9]{4})[^0-9]`), [2]int{1, -1}},
	{regexp.MustCompile(`^(?P<episodeNumber>[0-9]{4})[^0-9]`), [2]int{0, -1}},
	{regexp.MustCompile(`[^0-9](?P<episodeNumber>[0-9]{4})$`), [2]int{1, 0}},
	{regexp.MustCompile(`[^0-9](?P<episodeNumber>[0-9]{2,3})[^0-9]`), [2]int{1, -1}},
	{regexp.MustCompile(`^(?P<episodeNumber>[0-9]{2,3})[^0-9]`), [2]int{0, -1}},
	{regexp.MustCompile(`[^0-9](?P<episodeNumber>[0-9]{2,3})$`), [2]int{1, 0}},
	{regexp.MustCompile(`^(?P<episodeNumber>[0-9]{2,4})$`), [2]int{0, 0}},
}

// matchWeakEpisodes recognizes bare numbers that are probably episode
// markers. Values above 100 read as a combined season/episode pair at 0.6;
// anything else is a bare episode number at low confidence.
func matchWeakEpisodes(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("episodeNumber") {
		return nil, 0, matchtree.Span{}, false
	}

	for _, p := range weakEpisodePatterns {
		loc := p.re.FindStringSubmatchIndex(remaining)
		if loc == nil {
			continue
		}

		span := matchtree.Span{Start: loc[0] + p.adjust[0], End: loc[1] + p.adjust[1]}
		value, err := strconv.Atoi(submatch(p.re, remaining, loc, "episodeNumber"))
		if err != nil {
			return nil, 0, matchtree.Span{}, false
		}

		if value > 100 {
			props := map[string]any{"season": value / 100, "episodeNumber": value % 100}
			return props, 0.6, span, true
		}
		return map[string]any{"episodeNumber": value}, 0.3, span, true
	}
	return nil, 0, matchtree.Span{}, false
}

var yearRegex = regexp.MustCompile(`(?:^|[^0-9])(?P<year>19[0-9]{2}|20[0-9]{2})(?:[^0-9]|$)`)

func matchYear(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("year") {
		return nil, 0, matchtree.Span{}, false
	}

	loc := yearRegex.FindStringSubmatchIndex(remaining)
	if loc == nil {
		return nil, 0, matchtree.Span{}, false
	}
	idx := yearRegex.SubexpIndex("year")
	year, err := strconv.Atoi(remaining[loc[2*idx]:loc[2*idx+1]])
	if err != nil {
		return nil, 0, matchtree.Span{}, false
	}
	span := matchtree.Span{Start: loc[2*idx], End: loc[2*idx+1]}
	return map[string]any{"year": year}, 1.0, span, true
}

var websiteRegex = regexp.MustCompile(`(?i)\b(?:www\.[a-z0-9-]+\.[a-z]{2,4}|[a-z0-9-]+\.(?:com|net|org))\b`)

func matchWebsite(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("website") {
		return nil, 0, matchtree.Span{}, false
	}

	loc := websiteRegex.FindStringIndex(remaining)
	if loc == nil {
		return nil, 0, matchtree.Span{}, false
	}
	site := remaining[loc[0]:loc[1]]
	return map[string]any{"website": site}, 1.0, matchtree.Span{Start: loc[0], End: loc[1]}, true
}

// property token tables; tokens are matched separator-bounded and
// case-insensitive, the canonical value is what the guess carries
var propertyTokens = []struct {
	prop      string
	canonical string
	tokens    []string
}{
	{"format", "BluRay", []string{"bluray", "blu-ray"}},
	{"format", "BDRip", []string{"bdrip"}},
	{"format", "BRRip", []string{"brrip"}},
	{"format", "HDTV", []string{"hdtv"}},
	{"format", "WEB-DL", []string{"web-dl", "webdl"}},
	{"format", "WEBRip", []string{"webrip", "web-rip"}},
	{"format", "DVDRip", []string{"dvdrip"}},
	{"format", "DVD", []string{"dvd"}},
	{"format", "HDRip", []string{"hdrip"}},
	{"videoCodec", "x264", []string{"x264"}},
	{"videoCodec", "x265", []string{"x265"}},
	{"videoCodec", "h264", []string{"h264", "h.264"}},
	{"videoCodec", "h265", []string{"h265", "h.265", "hevc"}},
	{"videoCodec", "XviD", []string{"xvid"}},
	{"videoCodec", "DivX", []string{"divx"}},
	{"audioCodec", "AC3", []string{"ac3"}},
	{"audioCodec", "DTS", []string{"dts"}},
	{"audioCodec", "AAC", []string{"aac"}},
	{"audioCodec", "FLAC", []string{"flac"}},
	{"audioCodec", "MP3", []string{"mp3"}},
	{"screenSize", "480p", []string{"480p"}},
	{"screenSize", "720p", []string{"720p"}},
	{"screenSize", "1080p", []string{"1080p"}},
	{"screenSize", "1080i", []string{"1080i"}},
	{"screenSize", "2160p", []string{"2160p", "4k"}},
}

const tokenSeparators = "[](){} .-_+"

// matchProperties claims well-known release tokens: source format, codecs and
// screen size. One token per call; the driver revisits the residue, so one
// leaf can yield several properties across iterations.
func matchProperties(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	lower := strings.ToLower(remaining)

	bestStart, bestEnd := -1, -1
	var bestProp, bestCanonical string
	for _, entry := range propertyTokens {
		if t.Result().Contains(entry.prop) {
			continue
		}
		for _, token := range entry.tokens {
			pos := indexBounded(lower, token)
			if pos == -1 {
				continue
			}
			end := pos + len(token)
			if bestStart == -1 || pos < bestStart || (pos == bestStart && end > bestEnd) {
				bestStart, bestEnd = pos, end
				bestProp, bestCanonical = entry.prop, entry.canonical
			}
		}
	}

	if bestStart == -1 {
		return nil, 0, matchtree.Span{}, false
	}
	props := map[string]any{bestProp: bestCanonical}
	return props, 1.0, matchtree.Span{Start: bestStart, End: bestEnd}, true
}

func matchLanguage(t *matchtree.Tree, _ matchtree.Position, remaining string) (map[string]any, float64, matchtree.Span, bool) {
	if t.Result().Contains("language") {
		return nil, 0, matchtree.Span{}, false
	}

	m, err := language.Search(remaining)
	if err != nil || m == nil {
		return nil, 0, matchtree.Span{}, false
	}
	props := map[string]any{"language": m.Language}
	return props, m.Confidence, matchtree.Span{Start: m.Start, End: m.End}, true
}

// indexBounded returns the first separator-bounded occurrence of token, or -1.
func indexBounded(text, token string) int {
	for from := 0; ; {
		i := strings.Index(text[from:], token)
		if i == -1 {
			return -1
		}
		pos := from + i
		end := pos + len(token)
		leftOK := pos == 0 || strings.ContainsRune(tokenSeparators, rune(text[pos-1]))
		rightOK := end == len(text) || strings.ContainsRune(tokenSeparators, rune(text[end]))
		if leftOK && rightOK {
			return pos
		}
		from = pos + 1
	}
}

func submatch(re *regexp.Regexp, s string, loc []int, group string) string {
	idx := re.SubexpIndex(group)
	if idx < 0 || loc[2*idx] < 0 {
		return ""
	}
	return s[loc[2*idx]:loc[2*idx+1]]
}
