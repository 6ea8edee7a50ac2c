package mention

import (
	"regexp"
	"strings"
	"unicode"
)

// FallbackProductName is returned when no heuristic recognises a name.
const FallbackProductName = "New Product"

const maxCapitalizedRun = 6

// Heuristic guesses a product name from a context window and the keyword that
// produced it.
type Heuristic func(context, keyword string) (string, bool)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// Extractor tries its heuristics in order and keeps the first hit.
type Extractor struct {
	heuristics []Heuristic
}

// NewExtractor builds an Extractor. With no arguments it uses
// DefaultHeuristics.
func NewExtractor(heuristics ...Heuristic) *Extractor {
	if len(heuristics) == 0 {
		heuristics = DefaultHeuristics()
	}
	return &Extractor{heuristics: heuristics}
}

func DefaultHeuristics() []Heuristic {
	return []Heuristic{QuotedPhrase, CapitalizedRun, DefiniteArticlePhrase}
}

// Extract never returns an empty string.
func (e *Extractor) Extract(context, keyword string) string {
	for _, h := range e.heuristics {
		if name, ok := h(context, keyword); ok {
			return name
		}
	}
	return FallbackProductName
}

// QuotedPhrase returns the first double-quoted span after the keyword, e.g.
// `launched its "Vision Pro" headset`.
func QuotedPhrase(context, keyword string) (string, bool) {
	re := regexp.MustCompile(`(?i:` + regexp.QuoteMeta(keyword) + `)[^"“”]*["“]([^"“”]+)["”]`)
	return firstGroup(re, context)
}

// CapitalizedRun returns the first run of up to six whitespace-separated words
// that each start with an uppercase letter, found after the keyword. Words are
// whole alphanumeric tokens, so "iPhone" does not count.
func CapitalizedRun(context, keyword string) (string, bool) {
	loc := keywordRe(keyword).FindStringIndex(context)
	if loc == nil {
		return "", false
	}
	after := loc[1]

	var run [][]int
	for _, tok := range tokenRe.FindAllStringIndex(context, -1) {
		if tok[0] < after {
			continue
		}
		capitalized := unicode.IsUpper(rune(context[tok[0]]))

		if len(run) == 0 {
			if capitalized {
				run = append(run, tok)
			}
			continue
		}

		prev := run[len(run)-1]
		gap := context[prev[1]:tok[0]]
		if !capitalized || strings.TrimSpace(gap) != "" {
			break
		}
		run = append(run, tok)
		if len(run) == maxCapitalizedRun {
			break
		}
	}

	if len(run) == 0 {
		return "", false
	}
	return context[run[0][0]:run[len(run)-1][1]], true
}

// DefiniteArticlePhrase matches "<keyword> ... the <Name> <more words>" within
// one sentence, e.g. "announced the iPhone 17". The first word after "the" must
// contain an uppercase letter; up to four following words must start with an
// uppercase letter or a digit.
func DefiniteArticlePhrase(context, keyword string) (string, bool) {
	re := regexp.MustCompile(`(?i:` + regexp.QuoteMeta(keyword) + `)[^.]*?\b(?i:the)\s+` +
		`([A-Za-z0-9]*[A-Z][A-Za-z0-9]*(?:[ \t]+[A-Z0-9][A-Za-z0-9]*){0,4})`)
	return firstGroup(re, context)
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}
