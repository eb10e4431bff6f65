// README: OpenAI-compatible chat-completions adapter (SiliconFlow/DeepSeek).
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// openAIHTTPClient is shared by all requests. Streaming completions can
// legitimately run for minutes, so the timeout is generous; context
// cancellation is still honoured via NewRequestWithContext.
var openAIHTTPClient = &http.Client{Timeout: 5 * time.Minute}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// OpenAIProvider talks to any OpenAI-compatible chat-completions endpoint.
// It has no grounding support; Result.Sources is always nil.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
}

const openAISystemPrompt = "You are a world-class travel agent AI. Always return valid JSON."

func NewOpenAIProvider(apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingKey
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
	}, nil
}

func (p *OpenAIProvider) newRequest(ctx context.Context, prompt string, stream bool) (*http.Request, error) {
	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		Stream:      stream,
	}
	body.ResponseFormat.Type = "json_object"

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	return req, nil
}

// Generate runs one buffered completion.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (Result, error) {
	req, err := p.newRequest(ctx, prompt, false)
	if err != nil {
		return Result{}, err
	}
	resp, err := openAIHTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return Result{}, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return Result{}, fmt.Errorf("openai: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return Result{}, fmt.Errorf("openai: API returned empty choices array")
	}
	return Result{Text: cr.Choices[0].Message.Content}, nil
}

// GenerateStream reads server-sent "data:" lines and forwards each delta
// through onChunk in arrival order. A malformed stream termination is not
// fatal: whatever text accumulated is returned and the normalizer decides
// whether it parses.
func (p *OpenAIProvider) GenerateStream(ctx context.Context, prompt string, onChunk func(string) error) (Result, error) {
	req, err := p.newRequest(ctx, prompt, true)
	if err != nil {
		return Result{}, err
	}
	resp, err := openAIHTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var acc strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			return Result{Text: acc.String()}, nil
		}
		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			log.Printf("openai: skipping unparsable stream chunk: %v", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		acc.WriteString(delta)
		if onChunk != nil {
			if err := onChunk(delta); err != nil {
				return Result{}, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("openai: stream ended abnormally, keeping %d accumulated bytes: %v", acc.Len(), err)
	}
	return Result{Text: acc.String()}, nil
}
