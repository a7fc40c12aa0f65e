package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// DefaultSteps is the fallback breakdown when the completion service
// returns nothing usable.
var DefaultSteps = []string{
	"Research context (30m)",
	"Outline key points (20m)",
	"Draft introduction (45m)",
	"First revision (30m)",
}

// Client calls the chat-completion API and coerces its untrusted
// replies into fixed shapes.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a client. An empty model falls back to gpt-4o-mini.
func New(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
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

// complete submits one prompt and returns the raw completion text.
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: 0.3,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: "Return only JSON."},
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := string(body)
		if len(detail) > 500 {
			detail = detail[:500]
		}
		return "", fmt.Errorf("completion request failed (status %d): %s", resp.StatusCode, detail)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return chat.Choices[0].Message.Content, nil
}

// Suggestions fetches a fresh bundle. On success the bundle carries a
// generation timestamp derived from now.
func (c *Client) Suggestions(ctx context.Context, p Payload, now time.Time) (Bundle, error) {
	content, err := c.complete(ctx, BuildSuggestionPrompt(p), 420)
	if err != nil {
		return Bundle{}, err
	}

	bundle := CoerceBundle(content)
	stamp := now.UnixMilli()
	bundle.GeneratedAt = &stamp
	return bundle, nil
}

// InsightResult holds the mode-dependent insight fields; only the ones
// for the requested mode are populated.
type InsightResult struct {
	Bullets []string   `json:"bullets,omitempty"`
	Summary string     `json:"summary,omitempty"`
	Quick   QuickCheck `json:"quickCheck,omitempty"`
}

// Insight fetches a single-mode insight.
func (c *Client) Insight(ctx context.Context, mode string, p Payload) (InsightResult, error) {
	content, err := c.complete(ctx, BuildInsightPrompt(mode, p), 220)
	if err != nil {
		return InsightResult{}, err
	}
	return CoerceInsight(mode, content), nil
}

// CoerceInsight shapes the raw insight reply for the requested mode.
// Like CoerceBundle it is total.
func CoerceInsight(mode, body string) InsightResult {
	var raw struct {
		Bullets json.RawMessage `json:"bullets"`
		Summary json.RawMessage `json:"summary"`
		Mood    json.RawMessage `json:"mood"`
		Balance json.RawMessage `json:"balance"`
		Tip     json.RawMessage `json:"tip"`
	}
	_ = json.Unmarshal([]byte(stripFences(body)), &raw)

	switch mode {
	case ModeMoodCorrelations:
		return InsightResult{Bullets: coerceStrings(raw.Bullets, maxBullets)}
	case ModeMoodSummary:
		return InsightResult{Summary: coerceString(raw.Summary)}
	default:
		return InsightResult{Quick: QuickCheck{
			Mood:        coerceString(raw.Mood),
			WorkBalance: coerceString(raw.Balance),
			Tip:         coerceString(raw.Tip),
		}}
	}
}

// GenerateSteps fetches breakdown steps for an assignment. A reply with
// no usable steps falls back to DefaultSteps.
func (c *Client) GenerateSteps(ctx context.Context, req StepsRequest) ([]string, error) {
	content, err := c.complete(ctx, BuildStepsPrompt(req), 420)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Steps json.RawMessage `json:"steps"`
	}
	_ = json.Unmarshal([]byte(stripFences(content)), &raw)

	steps := coerceStrings(raw.Steps, 10)
	if len(steps) == 0 {
		return append([]string(nil), DefaultSteps...), nil
	}
	return steps, nil
}
