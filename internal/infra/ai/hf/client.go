package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ai "maintreport/internal/domain/ai"
)

// Client talks to a hosted inference endpoint (Hugging Face style):
// POST {"inputs": ..., "parameters": {...}} with a bearer token, response
// [{"generated_text": ...}].
type Client struct {
	Endpoint string
	Token    string
	HTTP     *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		Endpoint: endpoint,
		Token:    token,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float32 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type completion struct {
	GeneratedText string `json:"generated_text"`
}

func (c *Client) Generate(ctx context.Context, prompt string, p ai.GenerateParams) (string, error) {
	body, err := json.Marshal(request{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens:   p.MaxNewTokens,
			Temperature:    p.Temperature,
			ReturnFullText: p.ReturnFullText,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out []completion
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	if len(out) == 0 {
		return "", ai.ErrEmptyCompletion
	}

	text := out[0].GeneratedText
	// Some endpoints echo the prompt even when return_full_text is off.
	if !p.ReturnFullText {
		text = strings.TrimPrefix(text, prompt)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ai.ErrEmptyCompletion
	}
	return text, nil
}
