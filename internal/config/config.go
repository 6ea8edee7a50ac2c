/*
Package config loads scraper settings from defaults, an optional YAML file and
the environment.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUserAgent      = "Sample Company Name AdminContact@example.com"
	DefaultTickersURL     = "https://www.sec.gov/files/company_tickers.json"
	DefaultSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	DefaultArchivesURL    = "https://www.sec.gov"
	DefaultOutputPath     = "sec_8k_product_filings.csv"
	DefaultFormType       = "8-K"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

type Config struct {
	EDGAR    EDGAR    `yaml:"edgar"`
	Pipeline Pipeline `yaml:"pipeline"`
	Output   Output   `yaml:"output"`
	Log      Log      `yaml:"log"`
	History  History  `yaml:"history"`
	AI       AI       `yaml:"ai"`
	Email    Email    `yaml:"email"`
}

// EDGAR holds the upstream endpoints and request policy.
type EDGAR struct {
	UserAgent           string  `yaml:"user_agent"`
	TickersURL          string  `yaml:"tickers_url"`
	SubmissionsURL      string  `yaml:"submissions_url"`
	ArchivesURL         string  `yaml:"archives_url"`
	RequestDelaySeconds float64 `yaml:"request_delay_seconds"`
	TimeoutSeconds      float64 `yaml:"timeout_seconds"`
}

func (e EDGAR) RequestDelay() time.Duration {
	return secondsToDuration(e.RequestDelaySeconds)
}

func (e EDGAR) Timeout() time.Duration {
	return secondsToDuration(e.TimeoutSeconds)
}

// Pipeline bounds a run and selects what to look for.
type Pipeline struct {
	FormType             string   `yaml:"form_type"`
	MaxCompanies         int      `yaml:"max_companies"`
	MaxFilingsPerCompany int      `yaml:"max_filings_per_company"`
	Keywords             []string `yaml:"keywords"`
	Companies            []string `yaml:"companies"`
}

// Clone returns a copy that shares no slices with p.
func (p Pipeline) Clone() Pipeline {
	c := p
	c.Keywords = append([]string(nil), p.Keywords...)
	c.Companies = append([]string(nil), p.Companies...)
	return c
}

type Output struct {
	Path     string `yaml:"path"`
	Fallback bool   `yaml:"fallback"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type History struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type AI struct {
	APIKey            string `yaml:"api_key"`
	Model             string `yaml:"model"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

func (a AI) Enabled() bool {
	return a.APIKey != ""
}

type Email struct {
	Enabled    bool   `yaml:"enabled"`
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	SMTPUser   string `yaml:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Ready reports whether enough SMTP settings are present to send mail.
func (e Email) Ready() bool {
	return e.SMTPServer != "" && e.SMTPUser != "" && e.SMTPPass != "" && e.ToEmail != ""
}

// Default returns the settings the scraper runs with when nothing is configured.
func Default() Config {
	return Config{
		EDGAR: EDGAR{
			UserAgent:           DefaultUserAgent,
			TickersURL:          DefaultTickersURL,
			SubmissionsURL:      DefaultSubmissionsURL,
			ArchivesURL:         DefaultArchivesURL,
			RequestDelaySeconds: 0.2,
			TimeoutSeconds:      60,
		},
		Pipeline: Pipeline{
			FormType:             DefaultFormType,
			MaxCompanies:         5,
			MaxFilingsPerCompany: 5,
			Keywords: []string{
				"new product", "launch", "announce", "introduce",
				"unveil", "release", "innovation", "technology",
			},
			Companies: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META"},
		},
		Output: Output{
			Path: DefaultOutputPath,
		},
		Log: Log{
			Level: "info",
		},
		History: History{
			Path:          filepath.Join(os.TempDir(), "secscraper", "sec_report_history.json"),
			RetentionDays: 90,
		},
		AI: AI{
			Model:             DefaultGeminiModel,
			RequestsPerMinute: 10,
		},
		Email: Email{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUser
	}

	return cfg, nil
}

// ApplyEnv overrides secrets and the contact header from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("SEC_USER_AGENT"); v != "" {
		c.EDGAR.UserAgent = v
	}
	if v := getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := getenv("SMTP_SERVER"); v != "" {
		c.Email.SMTPServer = v
	}
	if v := getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Email.SMTPPort = port
		}
	}
	if v := getenv("SMTP_USER"); v != "" {
		c.Email.SMTPUser = v
	}
	if v := getenv("SMTP_PASS"); v != "" {
		c.Email.SMTPPass = v
	}
	if v := getenv("SMTP_FROM"); v != "" {
		c.Email.FromEmail = v
	}
	if v := getenv("SMTP_TO"); v != "" {
		c.Email.ToEmail = v
	}
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.EDGAR.UserAgent) == "" {
		errs = append(errs, errors.New("edgar.user_agent must identify the requester"))
	}
	if c.EDGAR.RequestDelaySeconds < 0 {
		errs = append(errs, errors.New("edgar.request_delay_seconds must not be negative"))
	}
	if strings.TrimSpace(c.Pipeline.FormType) == "" {
		errs = append(errs, errors.New("pipeline.form_type is required"))
	}
	if c.Pipeline.MaxCompanies < 0 || c.Pipeline.MaxFilingsPerCompany < 0 {
		errs = append(errs, errors.New("pipeline limits must not be negative"))
	}
	if len(ParseList(strings.Join(c.Pipeline.Keywords, ","), false)) == 0 {
		errs = append(errs, errors.New("pipeline.keywords must contain at least one keyword"))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path is required"))
	}

	return errors.Join(errs...)
}

// ParseList splits a comma-separated list, trimming entries and dropping empty
// ones. Entries are upper-cased when upper is set.
func ParseList(s string, upper bool) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if upper {
			trimmed = strings.ToUpper(trimmed)
		}
		out = append(out, trimmed)
	}
	return out
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
