package edgar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"go.uber.org/zap"
)

const cikWidth = 10

type tickerEntry struct {
	CIK    json.Number `json:"cik_str"`
	Ticker string      `json:"ticker"`
	Title  string      `json:"title"`
}

type submissions struct {
	Filings *struct {
		Recent *recentFilings `json:"recent"`
	} `json:"filings"`
}

type recentFilings struct {
	Form            *[]string `json:"form"`
	AccessionNumber *[]string `json:"accessionNumber"`
	FilingDate      *[]string `json:"filingDate"`
	PrimaryDocument []string  `json:"primaryDocument"`
}

// ResolveTickers downloads the EDGAR ticker directory. On any failure the
// returned map is empty and the error says why.
func (c *Client) ResolveTickers(ctx context.Context) (types.TickerMap, error) {
	tickers := types.TickerMap{}

	c.log.Info("Fetching company tickers", zap.String("url", c.tickersURL))

	body, err := c.getOK(ctx, c.tickersURL)
	if err != nil {
		return tickers, fmt.Errorf("failed to fetch company tickers: %w", err)
	}

	var entries map[string]tickerEntry
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&entries); err != nil {
		return tickers, fmt.Errorf("failed to decode company tickers: %w: %v", ErrUnexpectedShape, err)
	}

	for _, e := range entries {
		ticker := strings.ToUpper(strings.TrimSpace(e.Ticker))
		cik, ok := PadCIK(e.CIK.String())
		if ticker == "" || !ok {
			c.log.Debug("Skipping malformed ticker entry", zap.String("ticker", e.Ticker), zap.String("cik", e.CIK.String()))
			continue
		}
		tickers[ticker] = cik
	}

	c.log.Info("Loaded company tickers", zap.Int("count", len(tickers)))
	return tickers, nil
}

// ListFilings returns up to maxCount filings of formType from the issuer's
// recent filing history, most recent first.
func (c *Client) ListFilings(ctx context.Context, ticker, cik, formType string, maxCount int) ([]types.Filing, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	url := fmt.Sprintf(c.submissionsURL, cik)
	c.log.Info("Fetching recent filings", zap.String("ticker", ticker), zap.String("cik", cik), zap.String("url", url))

	body, err := c.getOK(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings for %s: %w", ticker, err)
	}

	var subs submissions
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode filings for %s: %w: %v", ticker, ErrUnexpectedShape, err)
	}

	recent, err := validateRecent(subs)
	if err != nil {
		return nil, fmt.Errorf("filings for %s: %w", ticker, err)
	}

	forms := *recent.Form
	accessions := *recent.AccessionNumber
	dates := *recent.FilingDate

	var filings []types.Filing
	for i, form := range forms {
		if form != formType {
			continue
		}

		primaryDoc := ""
		if i < len(recent.PrimaryDocument) {
			primaryDoc = strings.TrimSpace(recent.PrimaryDocument[i])
		}

		filings = append(filings, c.newFiling(cik, form, accessions[i], dates[i], primaryDoc))
		if len(filings) >= maxCount {
			break
		}
	}

	c.log.Info("Found filings", zap.String("ticker", ticker), zap.String("form", formType), zap.Int("count", len(filings)))
	return filings, nil
}

func (c *Client) newFiling(cik, form, accession, filingDate, primaryDoc string) types.Filing {
	folder := ArchiveFolderURL(c.archivesURL, cik, accession)

	f := types.Filing{
		AccessionNumber: accession,
		FilingDate:      filingDate,
		Form:            form,
		IndexURL:        folder + accession + "-index.htm",
	}
	if primaryDoc != "" {
		f.DocURL = folder + primaryDoc
	}
	return f
}

func validateRecent(subs submissions) (*recentFilings, error) {
	if subs.Filings == nil || subs.Filings.Recent == nil {
		return nil, fmt.Errorf("%w: missing filings.recent", ErrUnexpectedShape)
	}
	recent := subs.Filings.Recent
	if recent.Form == nil || recent.AccessionNumber == nil || recent.FilingDate == nil {
		return nil, fmt.Errorf("%w: missing form, accessionNumber or filingDate", ErrUnexpectedShape)
	}
	n := len(*recent.Form)
	if len(*recent.AccessionNumber) < n || len(*recent.FilingDate) < n {
		return nil, fmt.Errorf("%w: recent filing arrays differ in length", ErrUnexpectedShape)
	}
	return recent, nil
}

// ArchiveFolderURL is the folder holding every file of a filing, with a
// trailing slash.
func ArchiveFolderURL(archivesURL, cik, accession string) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/",
		strings.TrimRight(archivesURL, "/"), cik, strings.ReplaceAll(accession, "-", ""))
}

// PadCIK left-pads a raw numeric CIK to ten digits. It reports false for values
// that are not plain non-negative integers or do not fit.
func PadCIK(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > cikWidth {
		return "", false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return strings.Repeat("0", cikWidth-len(raw)) + raw, true
}
