package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

const classifyPrompt = `You are a support ticket classification assistant.
Analyze the following support ticket description and suggest the most appropriate category and priority level.

Available Categories: billing, technical, account, general
Available Priorities: low, medium, high, critical

Response must be ONLY a valid JSON object with keys: "suggested_category" and "suggested_priority".

Description: %s`

// OpenAIConfig holds connection settings for a chat-completions API.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	TimeoutMs int
}

// OpenAIAdvisor obtains suggestions from an OpenAI-compatible
// chat-completions endpoint.
type OpenAIAdvisor struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAIAdvisor constructs the advisor, applying defaults for
// unset model and base URL.
func NewOpenAIAdvisor(cfg OpenAIConfig) *OpenAIAdvisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 5000
	}
	return &OpenAIAdvisor{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
	}
}

// Suggest calls the chat-completions API and parses the JSON object in
// the reply. Values outside the closed enumerations fail the call so
// the caller can fall back.
func (a *OpenAIAdvisor) Suggest(ctx context.Context, description string) (domain.ClassificationSuggestion, error) {
	requestBody := map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(classifyPrompt, description)},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return domain.ClassificationSuggestion{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return domain.ClassificationSuggestion{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.ClassificationSuggestion{}, fmt.Errorf("call classification api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.ClassificationSuggestion{}, fmt.Errorf("classification api status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return domain.ClassificationSuggestion{}, fmt.Errorf("decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return domain.ClassificationSuggestion{}, fmt.Errorf("no choices in response")
	}

	return parseSuggestionJSON(response.Choices[0].Message.Content)
}

// parseSuggestionJSON extracts the suggestion object, tolerating
// markdown code fences some models wrap around JSON output.
func parseSuggestionJSON(content string) (domain.ClassificationSuggestion, error) {
	content = stripCodeFence(content)

	var payload struct {
		SuggestedCategory string `json:"suggested_category"`
		SuggestedPriority string `json:"suggested_priority"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.ClassificationSuggestion{}, fmt.Errorf("parse suggestion: %w", err)
	}

	suggestion := domain.ClassificationSuggestion{
		SuggestedCategory: domain.TicketCategory(strings.ToLower(strings.TrimSpace(payload.SuggestedCategory))),
		SuggestedPriority: domain.TicketPriority(strings.ToLower(strings.TrimSpace(payload.SuggestedPriority))),
	}
	if !suggestion.SuggestedCategory.Valid() {
		return domain.ClassificationSuggestion{}, fmt.Errorf("suggested category %q outside enumeration", payload.SuggestedCategory)
	}
	if !suggestion.SuggestedPriority.Valid() {
		return domain.ClassificationSuggestion{}, fmt.Errorf("suggested priority %q outside enumeration", payload.SuggestedPriority)
	}
	return suggestion, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}
