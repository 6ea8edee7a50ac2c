/*
Package mention finds product-announcement language in filing text and guesses
the product being announced.
*/
package mention

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"
)

const (
	contextBefore = 100
	contextAfter  = 200
)

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

// Detector searches text for keywords in the order they were configured.
type Detector struct {
	patterns []keywordPattern
}

func NewDetector(keywords []string) *Detector {
	d := &Detector{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		d.patterns = append(d.patterns, keywordPattern{keyword: kw, re: keywordRe(kw)})
	}
	return d
}

// Detect returns a Mention for the first configured keyword present in text.
// Keyword order decides, not position: a later keyword that appears earlier in
// the text never wins over an earlier keyword that appears at all.
func (d *Detector) Detect(text string) (types.Mention, bool) {
	for _, p := range d.patterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		return types.Mention{
			Keyword: p.keyword,
			Window:  window(text, loc[0]),
			Source:  text,
		}, true
	}
	return types.Mention{}, false
}

// Detect is a one-shot form of Detector.Detect returning
// (found, context, keyword).
func Detect(text string, keywords []string) (bool, string, string) {
	m, ok := NewDetector(keywords).Detect(text)
	if !ok {
		return false, "", ""
	}
	return true, m.Window, m.Keyword
}

// window slices contextBefore characters before the byte offset at, through
// contextAfter characters after it, clamped to the text.
func window(text string, at int) string {
	runes := []rune(text)
	pos := utf8.RuneCountInString(text[:at])

	start := max(0, pos-contextBefore)
	end := min(len(runes), pos+contextAfter)
	return string(runes[start:end])
}

func keywordRe(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
}
