package edgar

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const documentTableName = "document format files"

// LocateDocument reads a filing index page and returns the absolute URL of the
// document described as formType.
func (c *Client) LocateDocument(ctx context.Context, indexURL, formType string) (string, error) {
	c.log.Info("Fetching document URL from index page", zap.String("url", indexURL))

	body, err := c.getOK(ctx, indexURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch index page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse index page %s: %w", indexURL, err)
	}

	href, err := findDocumentHref(doc, formType)
	if err != nil {
		return "", err
	}

	docURL, err := absoluteDocURL(indexURL, href)
	if err != nil {
		return "", err
	}

	c.log.Info("Found document URL", zap.String("form", formType), zap.String("url", docURL))
	return docURL, nil
}

func findDocumentHref(doc *goquery.Document, formType string) (string, error) {
	table := doc.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		summary, _ := t.Attr("summary")
		caption := t.ChildrenFiltered("caption").First().Text()
		return strings.EqualFold(strings.TrimSpace(summary), documentTableName) ||
			strings.EqualFold(strings.TrimSpace(caption), documentTableName)
	}).First()

	if table.Length() == 0 {
		return "", ErrNoDocumentTable
	}

	wanted := strings.ToLower(formType)
	var href string

	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		description := strings.ToLower(strings.TrimSpace(cells.Eq(1).Text()))
		if description != wanted && !strings.Contains(description, "form "+wanted) {
			return true
		}

		link, ok := cells.Eq(2).Find("a").First().Attr("href")
		if !ok || strings.TrimSpace(link) == "" {
			return true
		}
		href = strings.TrimSpace(link)
		return false
	})

	if href == "" {
		return "", fmt.Errorf("%w: no %s row", ErrDocumentNotFound, formType)
	}
	return href, nil
}

// absoluteDocURL resolves href against the index page and unwraps inline XBRL
// viewer links (/ix?doc=/Archives/...) to the document they display.
func absoluteDocURL(indexURL, href string) (string, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return "", fmt.Errorf("invalid index URL %s: %w", indexURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid document link %q: %w", href, err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Path == "/ix" {
		if inner := resolved.Query().Get("doc"); inner != "" {
			resolved = base.ResolveReference(&url.URL{Path: inner})
		}
	}
	return resolved.String(), nil
}
