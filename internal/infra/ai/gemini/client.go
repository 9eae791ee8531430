package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	ai "maintreport/internal/domain/ai"
)

type Client struct {
	client *genai.Client
	Model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-1.5-pro"
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: cli, Model: model}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, p ai.GenerateParams) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.MaxNewTokens > 0 {
		cfg.MaxOutputTokens = int32(p.MaxNewTokens)
	}
	if p.Temperature > 0 {
		cfg.Temperature = genai.Ptr(p.Temperature)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", ai.ErrEmptyCompletion
	}
	return out, nil
}
