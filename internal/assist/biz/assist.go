// Package biz implements the AI research-assist use case: templated
// chat-completion calls that enhance queries, summarize and categorize
// results, explain historical terminology, and suggest searches. Every
// operation degrades to a documented fallback when the LLM call fails.
package biz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
)

// ErrNotConfigured means no assist API key was provided at startup.
var ErrNotConfigured = errors.New("AI key not configured")

const maxSuggestions = 5

// Config represents assist configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// ResultInput is the slice of a search result the prompts template over.
type ResultInput struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Source  string `json:"source"`
	Text    string `json:"text"`
}

// Category is one bucket of categorized results.
type Category struct {
	Category    string `json:"category"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// AssistUseCase drives the chat-completion calls
type AssistUseCase struct {
	client *openai.Client
	config *Config
	logger *logger.Logger
}

// NewAssistUseCase creates the assist use case. A missing API key is
// tolerated; the use case reports ErrNotConfigured per call instead.
func NewAssistUseCase(cfg *Config, log *logger.Logger) *AssistUseCase {
	if log == nil {
		log = logger.L()
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	return &AssistUseCase{client: client, config: cfg, logger: log}
}

// Enabled reports whether an assist API key was configured
func (uc *AssistUseCase) Enabled() bool {
	return uc.client != nil
}

// complete sends one user-role message and returns the trimmed completion
func (uc *AssistUseCase) complete(ctx context.Context, prompt string) (string, error) {
	if uc.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := uc.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: uc.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   uc.config.MaxTokens,
		Temperature: uc.config.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// EnhanceQuery expands a search query with historical context. On LLM
// failure or an implausibly short completion it falls back to appending
// generic archive terms, so the caller always gets a usable query.
func (uc *AssistUseCase) EnhanceQuery(ctx context.Context, query string) (string, error) {
	if uc.client == nil {
		return "", ErrNotConfigured
	}

	enhanced, err := uc.complete(ctx, enhancePrompt(query))
	if err != nil {
		uc.logger.Warn("query enhancement failed", zap.Error(err))
		return query + " Australian historical context colonial period archives records", nil
	}
	if enhanced == "" || len(enhanced) < len(query) {
		return query + " Australian historical records colonial period archives", nil
	}
	return enhanced, nil
}

// Summarize produces a structured summary over the first results
func (uc *AssistUseCase) Summarize(ctx context.Context, results []ResultInput) (string, error) {
	if uc.client == nil {
		return "", ErrNotConfigured
	}
	if len(results) == 0 {
		return "", nil
	}
	return uc.complete(ctx, summarizePrompt(results))
}

// Categorize buckets results into Australian history categories. The LLM
// answers free text around a JSON array; anything that does not parse
// degrades to a single catch-all bucket.
func (uc *AssistUseCase) Categorize(ctx context.Context, results []ResultInput) ([]Category, error) {
	if uc.client == nil {
		return nil, ErrNotConfigured
	}
	if len(results) == 0 {
		return []Category{}, nil
	}

	fallback := []Category{{
		Category:    "Historical Records",
		Count:       len(results),
		Description: "Australian historical documents",
	}}

	raw, err := uc.complete(ctx, categorizePrompt(results))
	if err != nil {
		uc.logger.Warn("categorization failed", zap.Error(err))
		return fallback, nil
	}

	if categories, ok := extractCategories(raw); ok {
		return categories, nil
	}
	return fallback, nil
}

// extractCategories pulls the first JSON array out of a completion
func extractCategories(raw string) ([]Category, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var categories []Category
	if err := json.Unmarshal([]byte(raw[start:end+1]), &categories); err != nil {
		return nil, false
	}
	return categories, true
}

// ExplainTerms glosses archaic terminology found in result snippets
func (uc *AssistUseCase) ExplainTerms(ctx context.Context, results []ResultInput) (string, error) {
	if uc.client == nil {
		return "", ErrNotConfigured
	}
	if len(results) == 0 {
		return "", nil
	}

	content, err := uc.complete(ctx, explainTermsPrompt(results))
	if err != nil {
		uc.logger.Warn("term explanation failed", zap.Error(err))
		return "Historical language assistance temporarily unavailable.", nil
	}
	return content, nil
}

// Suggest proposes complete search queries for a partial one. Inputs under
// two characters return an empty list without calling the LLM.
func (uc *AssistUseCase) Suggest(ctx context.Context, partial string) ([]string, error) {
	if uc.client == nil {
		return nil, ErrNotConfigured
	}
	if len(strings.TrimSpace(partial)) < 2 {
		return []string{}, nil
	}

	raw, err := uc.complete(ctx, suggestPrompt(partial))
	if err != nil {
		uc.logger.Warn("suggestions failed", zap.Error(err))
		return []string{}, nil
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}

// CheckConnection verifies the assist API is reachable
func (uc *AssistUseCase) CheckConnection(ctx context.Context) bool {
	out, err := uc.complete(ctx, "Test connection. Respond with 'Connected'")
	if err != nil {
		uc.logger.Warn("assist connection check failed", zap.Error(err))
		return false
	}
	return strings.Contains(out, "Connected")
}
