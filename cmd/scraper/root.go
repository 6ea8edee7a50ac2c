package main

import (
	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"

	"github.com/spf13/cobra"
)

type options struct {
	configPath   string
	output       string
	keywords     string
	companies    string
	form         string
	maxCompanies int
	maxFilings   int
	delay        float64
	fallback     bool
	notify       bool
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "scraper",
		Short: "Extract product announcements from recent SEC 8-K filings",
		Long: `Looks up each configured ticker on SEC EDGAR, reads its most recent 8-K
filings and records the first product-related passage found in each one.

Results are written to a CSV file. With --notify, filings not reported before
are emailed, optionally with a Gemini analysis when GEMINI_API_KEY is set.

Example:
  scraper -c AAPL,MSFT -k "launch,announce" -o products.csv`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runScraper(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	f.StringVarP(&opts.output, "output", "o", "", "CSV output path (default "+config.DefaultOutputPath+")")
	f.StringVarP(&opts.keywords, "keywords", "k", "", "Comma-separated keywords, in priority order")
	f.StringVarP(&opts.companies, "companies", "c", "", "Comma-separated ticker symbols")
	f.StringVarP(&opts.form, "form", "f", "", "Form type to search (default "+config.DefaultFormType+")")
	f.IntVar(&opts.maxCompanies, "max-companies", 0, "Maximum number of companies to process")
	f.IntVar(&opts.maxFilings, "max-filings", 0, "Maximum number of filings per company")
	f.Float64Var(&opts.delay, "delay", 0, "Seconds to wait before every SEC request")
	f.BoolVar(&opts.fallback, "fallback", false, "Write illustrative sample rows when nothing is found")
	f.BoolVar(&opts.notify, "notify", false, "Email new results using the SMTP_* settings")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	return cmd
}

// loadConfig layers explicitly set flags over the file and environment config.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	applyFlags(cmd, opts, &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("output") {
		cfg.Output.Path = opts.output
	}
	if changed("keywords") {
		cfg.Pipeline.Keywords = config.ParseList(opts.keywords, false)
	}
	if changed("companies") {
		cfg.Pipeline.Companies = config.ParseList(opts.companies, true)
	}
	if changed("form") {
		cfg.Pipeline.FormType = opts.form
	}
	if changed("max-companies") {
		cfg.Pipeline.MaxCompanies = opts.maxCompanies
	}
	if changed("max-filings") {
		cfg.Pipeline.MaxFilingsPerCompany = opts.maxFilings
	}
	if changed("delay") {
		cfg.EDGAR.RequestDelaySeconds = opts.delay
	}
	if changed("fallback") {
		cfg.Output.Fallback = opts.fallback
	}
	if changed("notify") {
		cfg.Email.Enabled = opts.notify
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}
