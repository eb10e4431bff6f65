// README: Provider registry keyed by the form's provider selector.
package ai

import (
	"context"
	"log"

	"wayfarer/internal/config"
	"wayfarer/internal/prefs"
)

// Registry holds the adapters whose credentials were configured.
// Providers without a key stay nil and surface ErrMissingKey on selection
// rather than at startup, so a single-provider deployment still works.
type Registry struct {
	gemini *GeminiProvider
	openai *OpenAIProvider
}

func NewRegistry(ctx context.Context, cfg config.Config) (*Registry, error) {
	r := &Registry{}

	if cfg.Gemini.APIKey != "" {
		g, err := NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		r.gemini = g
	} else {
		log.Printf("ai: GEMINI_API_KEY not set, gemini provider disabled")
	}

	if cfg.SiliconFlow.APIKey != "" {
		o, err := NewOpenAIProvider(cfg.SiliconFlow.APIKey, cfg.SiliconFlow.BaseURL, cfg.SiliconFlow.Model)
		if err != nil {
			return nil, err
		}
		r.openai = o
	} else {
		log.Printf("ai: SILICONFLOW_API_KEY not set, siliconflow provider disabled")
	}

	return r, nil
}

// ForID resolves a provider selector to an adapter.
func (r *Registry) ForID(id prefs.Provider) (Provider, error) {
	switch id {
	case prefs.ProviderGemini:
		if r.gemini == nil {
			return nil, ErrMissingKey
		}
		return r.gemini, nil
	case prefs.ProviderSiliconFlow:
		if r.openai == nil {
			return nil, ErrMissingKey
		}
		return r.openai, nil
	}
	return nil, ErrUnknownProvider
}

// Close releases provider resources.
func (r *Registry) Close() {
	if r.gemini != nil {
		r.gemini.Close()
	}
}
