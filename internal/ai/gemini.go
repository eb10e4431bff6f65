// README: Gemini adapter with search grounding and a single no-search fallback.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wayfarer/internal/plan"
	"wayfarer/internal/prompt"
)

// GeminiProvider implements Provider using Google's Gemini models. The
// first attempt runs with the Google Search retrieval tool so weather and
// travel facts are grounded; if that call fails (tool availability varies
// by environment), one fallback attempt runs without tools. That fallback
// is the only retry anywhere in the system.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider initializes a Gemini client. apiKey comes from the
// environment and must be non-empty.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, modelName: modelName}, nil
}

// Close cleans up the underlying client.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) model(system string, withSearch bool) *genai.GenerativeModel {
	m := p.client.GenerativeModel(p.modelName)
	m.SetTemperature(0.4)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	if withSearch {
		m.Tools = []*genai.Tool{{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}}
	} else {
		// JSON response mode and tools are mutually exclusive on the API;
		// the grounded attempt relies on the prompt's schema instruction.
		m.ResponseMIMEType = "application/json"
	}
	return m
}

// Generate runs one completion, search-grounded with fallback.
func (p *GeminiProvider) Generate(ctx context.Context, userPrompt string) (Result, error) {
	res, err := p.generateOnce(ctx, p.model(prompt.SystemInstruction, true), userPrompt)
	if err == nil {
		return res, nil
	}
	log.Printf("gemini: search-grounded call failed, retrying without search: %v", err)
	return p.generateOnce(ctx, p.model(prompt.FallbackSystemInstruction, false), userPrompt)
}

// GenerateStream satisfies Provider. Gemini responses in this flow arrive
// as one body, so the accumulated text is delivered as a single chunk.
func (p *GeminiProvider) GenerateStream(ctx context.Context, userPrompt string, onChunk func(string) error) (Result, error) {
	res, err := p.Generate(ctx, userPrompt)
	if err != nil {
		return Result{}, err
	}
	if onChunk != nil {
		if err := onChunk(res.Text); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func (p *GeminiProvider) generateOnce(ctx context.Context, m *genai.GenerativeModel, userPrompt string) (Result, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return Result{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, fmt.Errorf("gemini: API returned empty candidates")
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return Result{}, fmt.Errorf("gemini: API returned empty text parts")
	}

	return Result{Text: text.String(), Sources: citationSources(cand)}, nil
}

// citationSources extracts grounding citations from a candidate. The API
// reports URIs without page titles, so the URI doubles as the title.
func citationSources(cand *genai.Candidate) []plan.SearchSource {
	if cand.CitationMetadata == nil {
		return nil
	}
	var sources []plan.SearchSource
	for _, cs := range cand.CitationMetadata.CitationSources {
		if cs == nil || cs.URI == nil || *cs.URI == "" {
			continue
		}
		sources = append(sources, plan.SearchSource{Title: *cs.URI, URL: *cs.URI})
	}
	return sources
}
