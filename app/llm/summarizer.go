package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avoronkov/newsbrief/app/retry"
)

const (
	maxContentChars = 4000
	maxAttempts     = 3

	systemPrompt = "You are an AI news summarizer. Create concise, informative summaries of AI-related articles. " +
		"Focus on key facts, developments, and implications. Keep summaries between 150-200 words. " +
		"Use clear, professional language suitable for a tech-savvy audience."
)

// Summarizer produces bounded-length article summaries via an
// OpenAI-compatible chat completions endpoint.
type Summarizer struct {
	endpoint        string
	apiKey          string
	model           string
	maxTokens       int
	temperature     float64
	inputCostPer1K  float64
	outputCostPer1K float64
	httpClient      *http.Client
	backoff         retry.BackoffFunc
}

type Option func(*Summarizer)

// WithBackoff overrides the inter-attempt delay, used by tests.
func WithBackoff(backoff retry.BackoffFunc) Option {
	return func(s *Summarizer) {
		s.backoff = backoff
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Summarizer) {
		s.httpClient = client
	}
}

func NewSummarizer(endpoint, apiKey, model string, maxTokens int, inputCostPer1K, outputCostPer1K float64, opts ...Option) *Summarizer {
	s := &Summarizer{
		endpoint:        endpoint,
		apiKey:          apiKey,
		model:           model,
		maxTokens:       maxTokens,
		temperature:     0.7,
		inputCostPer1K:  inputCostPer1K,
		outputCostPer1K: outputCostPer1K,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: retry.Exponential(time.Second),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Provider identifies the LLM backing this summarizer, recorded in the
// activity log.
func (s *Summarizer) Provider() string {
	return "openai-" + s.model
}

// Summarize requests a summary of content, truncated to the first 4000
// characters. Up to 3 attempts are made with exponential backoff (1s, 2s);
// exhaustion returns a *retry.Error carrying the attempt count and the last
// underlying failure.
func (s *Summarizer) Summarize(ctx context.Context, content string) (*Summary, error) {
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var summary *Summary
	attempt := 0

	err := retry.Do(ctx, maxAttempts, s.backoff, func() error {
		attempt++
		result, err := s.complete(ctx, content)
		if err != nil {
			slog.Warn("Summarization attempt failed", "attempt", attempt, "error", err)
			return err
		}
		summary = result
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	return summary, nil
}

func (s *Summarizer) complete(ctx context.Context, content string) (*Summary, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Summarize this article:\n\n" + content},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("LLM API error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty summary received from LLM")
	}

	usage := chatResp.Usage

	return &Summary{
		Text:         chatResp.Choices[0].Message.Content,
		TokensUsed:   usage.TotalTokens,
		CostEstimate: s.calculateCost(usage.PromptTokens, usage.CompletionTokens),
	}, nil
}

func (s *Summarizer) calculateCost(promptTokens, completionTokens int) float64 {
	inputCost := float64(promptTokens) / 1000 * s.inputCostPer1K
	outputCost := float64(completionTokens) / 1000 * s.outputCostPer1K
	return inputCost + outputCost
}
