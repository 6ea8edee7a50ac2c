/*
Package pipeline drives ticker resolution, filing retrieval and mention
extraction across the configured companies, one request at a time.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/mention"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"go.uber.org/zap"
)

// ErrNoTickers aborts a run: without the ticker map no company can be resolved.
var ErrNoTickers = errors.New("no company tickers available")

// Source is the upstream filings repository. *edgar.Client implements it.
type Source interface {
	ResolveTickers(ctx context.Context) (types.TickerMap, error)
	ListFilings(ctx context.Context, ticker, cik, formType string, maxCount int) ([]types.Filing, error)
	LocateDocument(ctx context.Context, indexURL, formType string) (string, error)
	FetchText(ctx context.Context, docURL string) (string, error)
}

type Pipeline struct {
	cfg       config.Pipeline
	src       Source
	detector  *mention.Detector
	extractor *mention.Extractor
	log       *zap.Logger
}

// New copies cfg, so later changes by the caller do not affect the pipeline.
func New(cfg config.Pipeline, src Source, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.Clone()
	return &Pipeline{
		cfg:       cfg,
		src:       src,
		detector:  mention.NewDetector(cfg.Keywords),
		extractor: mention.NewExtractor(),
		log:       log,
	}
}

// Run processes up to MaxCompanies companies and MaxFilingsPerCompany filings
// each. Failures scoped to one company or filing are logged and skipped; only a
// missing ticker map stops the run early. The returned slice is never nil.
func (p *Pipeline) Run(ctx context.Context) ([]types.Result, error) {
	results := []types.Result{}

	tickers, err := p.src.ResolveTickers(ctx)
	if err != nil {
		p.log.Error("Failed to get company tickers", zap.Error(err))
		return results, fmt.Errorf("%w: %v", ErrNoTickers, err)
	}
	if len(tickers) == 0 {
		p.log.Error("Ticker map is empty")
		return results, ErrNoTickers
	}

	processed := 0
	for _, ticker := range p.cfg.Companies {
		if processed >= p.cfg.MaxCompanies {
			p.log.Info("Reached maximum number of companies", zap.Int("max", p.cfg.MaxCompanies))
			break
		}

		cik, ok := tickers[ticker]
		if !ok {
			p.log.Warn("Ticker not found in SEC database", zap.String("ticker", ticker))
			continue
		}
		processed++

		results = append(results, p.processCompany(ctx, ticker, cik)...)
	}

	p.log.Info("Extracted product-related filings", zap.Int("count", len(results)))
	return results, nil
}

func (p *Pipeline) processCompany(ctx context.Context, ticker, cik string) []types.Result {
	log := p.log.With(zap.String("ticker", ticker), zap.String("cik", cik))
	log.Info("Processing company")

	filings, err := p.src.ListFilings(ctx, ticker, cik, p.cfg.FormType, p.cfg.MaxFilingsPerCompany)
	if err != nil {
		log.Error("Failed to list filings", zap.Error(err))
		return nil
	}
	if len(filings) == 0 {
		log.Warn("No recent filings found", zap.String("form", p.cfg.FormType))
		return nil
	}

	var results []types.Result
	for _, f := range filings {
		if r, ok := p.processFiling(ctx, log, ticker, cik, f); ok {
			results = append(results, r)
		}
	}
	return results
}

func (p *Pipeline) processFiling(ctx context.Context, log *zap.Logger, ticker, cik string, f types.Filing) (types.Result, bool) {
	log = log.With(zap.String("accession", f.AccessionNumber))

	docURL := f.DocURL
	if docURL != "" {
		log.Info("Using direct document URL", zap.String("url", docURL))
	} else {
		located, err := p.src.LocateDocument(ctx, f.IndexURL, p.cfg.FormType)
		if err != nil {
			log.Warn("Could not get document URL for filing", zap.Error(err))
			return types.Result{}, false
		}
		docURL = located
	}
	if docURL == "" {
		log.Warn("Could not get document URL for filing")
		return types.Result{}, false
	}

	text, err := p.src.FetchText(ctx, docURL)
	if err != nil {
		log.Warn("Could not get text for filing", zap.Error(err))
		return types.Result{}, false
	}
	if text == "" {
		log.Warn("Filing document has no text", zap.String("url", docURL))
		return types.Result{}, false
	}

	m, ok := p.detector.Detect(text)
	if !ok {
		log.Info("No product information found in filing")
		return types.Result{}, false
	}
	log.Info("Found product keyword", zap.String("keyword", m.Keyword), zap.String("context", m.Window))

	name := p.extractor.Extract(m.Window, m.Keyword)
	log.Info("Added product filing", zap.String("product", name))

	return types.Result{
		Company:         ticker,
		CIK:             cik,
		FilingDate:      f.FilingDate,
		AccessionNumber: f.AccessionNumber,
		DocumentURL:     docURL,
		Keyword:         m.Keyword,
		ProductName:     name,
		Context:         m.Window,
	}, true
}
