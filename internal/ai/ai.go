/*
Package ai asks Gemini for a short analysis of a product announcement found in
an 8-K filing.
*/
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type ProductFact struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

type Analysis struct {
	Summary      []string      `json:"summary"`
	ProductFacts []ProductFact `json:"product_facts"`
}

// Generator returns the raw model output for a system instruction and prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Summarizer paces requests to the model and decodes its answers.
type Summarizer struct {
	gen     Generator
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewSummarizer connects to the Gemini API with the configured key and model.
func NewSummarizer(ctx context.Context, cfg config.AI, log *zap.Logger) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}

	return NewSummarizerWith(&geminiGenerator{client: client, model: model}, cfg.RequestsPerMinute, log), nil
}

// NewSummarizerWith wraps any Generator. requestsPerMinute <= 0 disables
// pacing.
func NewSummarizerWith(gen Generator, requestsPerMinute int, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}

	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}

	return &Summarizer{
		gen:     gen,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// Summarize analyses the context window of a single result.
func (s *Summarizer) Summarize(ctx context.Context, r types.Result) (*Analysis, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	s.log.Info("Requesting AI analysis", zap.String("ticker", r.Company), zap.String("accession", r.AccessionNumber))

	raw, err := s.gen.Generate(ctx, systemInstruction, buildUserPrompt(r))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseAnalysis(raw)
}

// parseAnalysis decodes model output, repairing the usual LLM damage first
// (code fences, trailing commas, unclosed brackets).
func parseAnalysis(raw string) (*Analysis, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, errors.New("empty gemini response")
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, fmt.Errorf("failed to repair gemini JSON response: %w. Raw text: %s", err, raw)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(repaired), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, raw)
	}
	return &analysis, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: prompt}},
			Role:  "user",
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    getResponseSchema(),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func getResponseSchema() *genai.Schema {
	factSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {Type: genai.TypeString, Description: "One of the defined product fact categories."},
			"details":  {Type: genai.TypeString, Description: "The specific fact as stated in the filing."},
		},
		Required: []string{"category", "details"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 2-4 concise bullet points summarizing the announcement.",
			},
			"product_facts": {
				Type:        genai.TypeArray,
				Items:       factSchema,
				Description: "Concrete facts about the announced product.",
			},
		},
		Required: []string{"summary", "product_facts"},
	}
}
