package mention

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKeywordOrderBeatsPosition(t *testing.T) {
	text := "We will release the update next week, then announce pricing."

	m, ok := NewDetector([]string{"announce", "release"}).Detect(text)
	require.True(t, ok)
	assert.Equal(t, "announce", m.Keyword)
	assert.Equal(t, text, m.Source)
}

func TestDetectCaseInsensitive(t *testing.T) {
	found, window, keyword := Detect("ACME UNVEILS ROCKET", []string{"launch", "unveil"})
	require.True(t, found)
	assert.Equal(t, "unveil", keyword)
	assert.Equal(t, "ACME UNVEILS ROCKET", window)
}

func TestDetectNoMatch(t *testing.T) {
	found, window, keyword := Detect("Quarterly dividend declared.", []string{"launch", "unveil"})
	assert.False(t, found)
	assert.Empty(t, window)
	assert.Empty(t, keyword)
}

func TestDetectSkipsBlankKeywords(t *testing.T) {
	_, ok := NewDetector([]string{"", "  "}).Detect("anything at all")
	assert.False(t, ok)
}

func TestWindowClampsAtStart(t *testing.T) {
	text := "launch " + strings.Repeat("x", 500)

	m, ok := NewDetector([]string{"launch"}).Detect(text)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(m.Window, "launch"))
	assert.Len(t, m.Window, 200)
}

func TestWindowClampsAtEnd(t *testing.T) {
	text := strings.Repeat("y", 300) + " launch"

	m, ok := NewDetector([]string{"launch"}).Detect(text)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("y", 99)+" launch", m.Window)
}

func TestWindowUsesFirstOccurrence(t *testing.T) {
	text := strings.Repeat("a", 150) + "launch" + strings.Repeat("b", 400) + "launch"

	m, ok := NewDetector([]string{"launch"}).Detect(text)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("a", 100)+"launch"+strings.Repeat("b", 194), m.Window)
}

func TestWindowCountsCharacters(t *testing.T) {
	text := strings.Repeat("é", 120) + "launch"

	m, ok := NewDetector([]string{"launch"}).Detect(text)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("é", 100)+"launch", m.Window)
}

func TestQuotedPhrase(t *testing.T) {
	name, ok := QuotedPhrase(`The company will Launch its new "Sky Box" device.`, "launch")
	require.True(t, ok)
	assert.Equal(t, "Sky Box", name)

	name, ok = QuotedPhrase("Acme will introduce “Rocket One” in May.", "introduce")
	require.True(t, ok)
	assert.Equal(t, "Rocket One", name)

	_, ok = QuotedPhrase(`"Sky Box" was launched.`, "launched")
	assert.False(t, ok)

	_, ok = QuotedPhrase(`we launch " " soon`, "launch")
	assert.False(t, ok)
}

func TestCapitalizedRun(t *testing.T) {
	tests := []struct {
		name    string
		context string
		keyword string
		want    string
		ok      bool
	}{
		{"simple run", "Microsoft unveiled Surface Pro 9 today", "unveil", "Surface Pro", true},
		{"stops at six words", "launch of Alpha Beta Gamma Delta Epsilon Zeta Eta", "launch", "Alpha Beta Gamma Delta Epsilon Zeta", true},
		{"ignores words before keyword", "Acme Corp will launch widgets", "launch", "", false},
		{"ignores lower-camel tokens", "announced the iPhone 17", "announce", "", false},
		{"stops at punctuation", "introduce Pixel Fold, Pixel Watch", "introduce", "Pixel Fold", true},
		{"keyword missing", "nothing here", "launch", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CapitalizedRun(tt.context, tt.keyword)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefiniteArticlePhrase(t *testing.T) {
	name, ok := DefiniteArticlePhrase("Apple today announced the iPhone 17 with new features.", "announce")
	require.True(t, ok)
	assert.Equal(t, "iPhone 17", name)

	name, ok = DefiniteArticlePhrase("we will LAUNCH the company's the Nova X2 Max line", "launch")
	require.True(t, ok)
	assert.Equal(t, "Nova X2 Max", name)

	_, ok = DefiniteArticlePhrase("we will launch soon. the Nova is coming", "launch")
	assert.False(t, ok, "a period before 'the' ends the sentence")
}

func TestExtractPrefersQuotedPhrase(t *testing.T) {
	ctx := `Acme announced Widget Pro, its "Sky Box" device`

	assert.Equal(t, "Sky Box", NewExtractor().Extract(ctx, "announce"))
}

func TestExtractFallback(t *testing.T) {
	ctx := "the company will announce this exciting update soon"

	assert.Equal(t, FallbackProductName, NewExtractor().Extract(ctx, "announce"))
	assert.Equal(t, "New Product", FallbackProductName)
}

func TestExtractEndToEndContext(t *testing.T) {
	text := "Apple today announced the iPhone 17 with new features."

	m, ok := NewDetector([]string{"new product", "launch", "announce"}).Detect(text)
	require.True(t, ok)
	assert.Equal(t, "announce", m.Keyword)
	assert.Contains(t, m.Window, "announced the iPhone 17")
	assert.Equal(t, "iPhone 17", NewExtractor().Extract(m.Window, m.Keyword))
}

func TestExtractCustomHeuristics(t *testing.T) {
	first := func(string, string) (string, bool) { return "", false }
	second := func(string, string) (string, bool) { return "Custom", true }

	assert.Equal(t, "Custom", NewExtractor(first, second).Extract("anything", "launch"))
}
