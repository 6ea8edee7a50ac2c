package edgar

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	lineBreakRe  = regexp.MustCompile(`\r\n|[\n\r\v\f\x{85}\x{2028}\x{2029}]`)
	columnGapRe  = regexp.MustCompile(` {2,}`)
	skippedNodes = map[string]bool{"script": true, "style": true}
)

// FetchText downloads a filing document and returns its visible text,
// normalized with NormalizeText.
func (c *Client) FetchText(ctx context.Context, docURL string) (string, error) {
	c.log.Info("Fetching filing document", zap.String("url", docURL))

	body, err := c.getOK(ctx, docURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", docURL, err)
	}

	text := NormalizeText(extractText(doc))
	c.log.Info("Extracted text from filing document", zap.String("url", docURL), zap.Int("chars", len(text)))
	return text, nil
}

// extractText concatenates every text node under n, skipping scripts, styles
// and comments.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.CommentNode, html.DoctypeNode:
			return
		case html.ElementNode:
			if skippedNodes[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return sb.String()
}

// NormalizeText flattens densely formatted filing text: each line is trimmed,
// runs of two or more spaces are treated as column breaks, empty fragments are
// dropped and the rest are joined with single newlines. Applying it twice gives
// the same result as applying it once.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")

	var fragments []string
	for _, line := range lineBreakRe.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, phrase := range columnGapRe.Split(line, -1) {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				fragments = append(fragments, phrase)
			}
		}
	}
	return strings.Join(fragments, "\n")
}
