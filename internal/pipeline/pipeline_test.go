package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/edgar"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSource struct {
	tickers    types.TickerMap
	tickersErr error
	filings    map[string][]types.Filing
	filingsErr map[string]error
	located    map[string]string
	texts      map[string]string

	listCalls   []string
	locateCalls []string
	fetchCalls  []string
}

func (f *fakeSource) ResolveTickers(context.Context) (types.TickerMap, error) {
	if f.tickersErr != nil {
		return types.TickerMap{}, f.tickersErr
	}
	return f.tickers, nil
}

func (f *fakeSource) ListFilings(_ context.Context, ticker, _, _ string, maxCount int) ([]types.Filing, error) {
	f.listCalls = append(f.listCalls, ticker)
	if err := f.filingsErr[ticker]; err != nil {
		return nil, err
	}
	filings := f.filings[ticker]
	if len(filings) > maxCount {
		filings = filings[:maxCount]
	}
	return filings, nil
}

func (f *fakeSource) LocateDocument(_ context.Context, indexURL, _ string) (string, error) {
	f.locateCalls = append(f.locateCalls, indexURL)
	if u, ok := f.located[indexURL]; ok {
		return u, nil
	}
	return "", edgar.ErrDocumentNotFound
}

func (f *fakeSource) FetchText(_ context.Context, docURL string) (string, error) {
	f.fetchCalls = append(f.fetchCalls, docURL)
	if text, ok := f.texts[docURL]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no document at %s", docURL)
}

func testConfig(companies ...string) config.Pipeline {
	return config.Pipeline{
		FormType:             "8-K",
		MaxCompanies:         5,
		MaxFilingsPerCompany: 5,
		Keywords:             []string{"new product", "launch", "announce"},
		Companies:            companies,
	}
}

func TestRunAbortsWithoutTickers(t *testing.T) {
	src := &fakeSource{tickersErr: errors.New("boom")}

	results, err := New(testConfig("AAPL"), src, zaptest.NewLogger(t)).Run(context.Background())
	require.ErrorIs(t, err, ErrNoTickers)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, src.listCalls)
}

func TestRunAbortsOnEmptyTickerMap(t *testing.T) {
	src := &fakeSource{tickers: types.TickerMap{}}

	results, err := New(testConfig("AAPL"), src, zaptest.NewLogger(t)).Run(context.Background())
	require.ErrorIs(t, err, ErrNoTickers)
	assert.Empty(t, results)
}

func TestRunSkipsUnknownTickersWithoutCountingThem(t *testing.T) {
	src := &fakeSource{
		tickers: types.TickerMap{"AAPL": "0000320193", "MSFT": "0000789019"},
	}
	cfg := testConfig("ZZZZ", "AAPL", "MSFT")
	cfg.MaxCompanies = 2

	results, err := New(cfg, src, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, []string{"AAPL", "MSFT"}, src.listCalls)
}

func TestRunStopsAtMaxCompanies(t *testing.T) {
	src := &fakeSource{
		tickers: types.TickerMap{"AAPL": "0000320193", "MSFT": "0000789019"},
	}
	cfg := testConfig("AAPL", "MSFT")
	cfg.MaxCompanies = 1

	_, err := New(cfg, src, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, src.listCalls)
}

func TestRunContinuesPastFailingCompany(t *testing.T) {
	src := &fakeSource{
		tickers:    types.TickerMap{"AAPL": "0000320193", "MSFT": "0000789019"},
		filingsErr: map[string]error{"AAPL": &edgar.StatusError{URL: "x", StatusCode: 503}},
		filings: map[string][]types.Filing{
			"MSFT": {{AccessionNumber: "0000789019-24-000001", FilingDate: "2024-09-10", DocURL: "doc-msft"}},
		},
		texts: map[string]string{"doc-msft": `Microsoft will launch "Surface Pro 9" today.`},
	}

	results, err := New(testConfig("AAPL", "MSFT"), src, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MSFT", results[0].Company)
	assert.Equal(t, "Surface Pro 9", results[0].ProductName)
	assert.Equal(t, "launch", results[0].Keyword)
}

func TestRunFilingPaths(t *testing.T) {
	src := &fakeSource{
		tickers: types.TickerMap{"AAPL": "0000320193"},
		filings: map[string][]types.Filing{
			"AAPL": {
				{AccessionNumber: "a-direct", DocURL: "doc-direct"},
				{AccessionNumber: "a-located", IndexURL: "idx-located"},
				{AccessionNumber: "a-unlocatable", IndexURL: "idx-missing"},
				{AccessionNumber: "a-unfetchable", DocURL: "doc-missing"},
				{AccessionNumber: "a-empty", DocURL: "doc-empty"},
				{AccessionNumber: "a-nomatch", DocURL: "doc-dividend"},
			},
		},
		located: map[string]string{"idx-located": "doc-located"},
		texts: map[string]string{
			"doc-direct":   "Apple today announced the iPhone 17 with new features.",
			"doc-located":  "Apple will launch Vision Air next spring.",
			"doc-empty":    "",
			"doc-dividend": "The board declared a quarterly dividend.",
		},
	}
	cfg := testConfig("AAPL")
	cfg.MaxFilingsPerCompany = 10

	results, err := New(cfg, src, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a-direct", results[0].AccessionNumber)
	assert.Equal(t, "doc-direct", results[0].DocumentURL)
	assert.Equal(t, "iPhone 17", results[0].ProductName)

	assert.Equal(t, "a-located", results[1].AccessionNumber)
	assert.Equal(t, "doc-located", results[1].DocumentURL)
	assert.Equal(t, "Vision Air", results[1].ProductName)
	assert.Equal(t, "0000320193", results[1].CIK)

	assert.Equal(t, []string{"idx-located", "idx-missing"}, src.locateCalls)
	assert.NotContains(t, src.fetchCalls, "")
}

func TestRunRespectsMaxFilings(t *testing.T) {
	src := &fakeSource{
		tickers: types.TickerMap{"AAPL": "0000320193"},
		filings: map[string][]types.Filing{
			"AAPL": {
				{AccessionNumber: "1", DocURL: "d"},
				{AccessionNumber: "2", DocURL: "d"},
				{AccessionNumber: "3", DocURL: "d"},
			},
		},
		texts: map[string]string{"d": "We launch things."},
	}
	cfg := testConfig("AAPL")
	cfg.MaxFilingsPerCompany = 2

	results, err := New(cfg, src, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestNewCopiesConfig(t *testing.T) {
	src := &fakeSource{tickers: types.TickerMap{"AAPL": "0000320193"}}
	cfg := testConfig("AAPL")

	p := New(cfg, src, nil)
	cfg.Companies[0] = "MSFT"

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, src.listCalls)
}

func TestRunAgainstEDGARServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."}}`))
	})
	mux.HandleFunc("/submissions/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"filings":{"recent":{
			"form":["10-Q","8-K"],
			"accessionNumber":["0000320193-25-000010","0000320193-25-000008"],
			"filingDate":["2025-02-01","2025-01-03"],
			"primaryDocument":["q.htm",""]
		}}}`))
	})
	mux.HandleFunc("/Archives/edgar/data/0000320193/000032019325000008/0000320193-25-000008-index.htm", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<table summary="Document Format Files">
			<tr><th>Seq</th><th>Description</th><th>Document</th></tr>
			<tr><td>1</td><td>8-K</td><td><a href="/ix?doc=/Archives/edgar/data/320193/000032019325000008/aapl-8k.htm">aapl-8k.htm</a></td></tr>
			</table></body></html>`))
	})
	mux.HandleFunc("/Archives/edgar/data/320193/000032019325000008/aapl-8k.htm", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Apple today announced the iPhone 17 with new features.</p></body></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := edgar.NewClient(config.EDGAR{
		UserAgent:      "Test Co test@example.com",
		TickersURL:     srv.URL + "/files/company_tickers.json",
		SubmissionsURL: srv.URL + "/submissions/CIK%s.json",
		ArchivesURL:    srv.URL,
		TimeoutSeconds: 5,
	}, zaptest.NewLogger(t))

	results, err := New(testConfig("AAPL"), client, zaptest.NewLogger(t)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "AAPL", r.Company)
	assert.Equal(t, "0000320193", r.CIK)
	assert.Equal(t, "2025-01-03", r.FilingDate)
	assert.Equal(t, "0000320193-25-000008", r.AccessionNumber)
	assert.Equal(t, srv.URL+"/Archives/edgar/data/320193/000032019325000008/aapl-8k.htm", r.DocumentURL)
	assert.Equal(t, "announce", r.Keyword)
	assert.Equal(t, "iPhone 17", r.ProductName)
	assert.Contains(t, r.Context, "iPhone 17")
}
