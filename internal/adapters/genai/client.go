// Package genai talks to an OpenAI-compatible chat completions endpoint and
// turns free-form completions into pipeline records.
//
// The client degrades rather than blocks the pipeline: a missing credential
// surfaces as ErrMissingCredential before any request, and a completion whose
// JSON cannot be delimited yields an empty result with a log line instead of
// an error. Requests are never retried.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thebeat/pipeline/pkg/logger"
	"github.com/thebeat/pipeline/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	defaultTimeout = 60 * time.Second
)

// Client is a chat completions client bound to one credential and model.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        logger.Logger
}

// New builds a Client. The credential may be empty; every call then fails
// fast with ErrMissingCredential so callers can fall back to placeholders.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.Named("genai"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one user prompt and returns the completion text. kind labels
// the call for logs and metrics.
func (c *Client) complete(ctx context.Context, kind, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("genai: encode request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("genai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordGenerationError(kind)
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		metrics.RecordGenerationError(kind)
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.RecordGenerationError(kind)
		return "", fmt.Errorf("genai: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		metrics.RecordGenerationError(kind)
		return "", ErrEmptyResponse
	}

	metrics.ObserveGeneration(kind, time.Since(start))
	return decoded.Choices[0].Message.Content, nil
}

// extractArray finds the outermost JSON array in a completion. Completions
// routinely wrap JSON in prose or markdown fences, so everything outside the
// first '[' and last ']' is discarded.
func extractArray(text string) (string, bool) {
	start := -1
	end := -1
	for i, r := range text {
		if r == '[' {
			start = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == ']' {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// extractObject is extractArray for a single JSON object.
func extractObject(text string) (string, bool) {
	start := -1
	end := -1
	for i, r := range text {
		if r == '{' {
			start = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '}' {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeArray parses the delimited array into out. A completion without a
// well-formed array is logged and reported as not-ok, never as an error.
func (c *Client) decodeArray(ctx context.Context, kind, text string, out any) bool {
	raw, ok := extractArray(text)
	if !ok {
		c.log.Warn(ctx, "completion carried no JSON array", logger.String("kind", kind))
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Warn(ctx, "completion array failed to parse",
			logger.String("kind", kind), logger.Error(err))
		return false
	}
	return true
}

func (c *Client) decodeObject(ctx context.Context, kind, text string, out any) bool {
	raw, ok := extractObject(text)
	if !ok {
		c.log.Warn(ctx, "completion carried no JSON object", logger.String("kind", kind))
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Warn(ctx, "completion object failed to parse",
			logger.String("kind", kind), logger.Error(err))
		return false
	}
	return true
}
