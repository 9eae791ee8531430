package openai

import (
    "context"
    "fmt"
    "strings"

    "github.com/sashabaranov/go-openai"

    ai "maintreport/internal/domain/ai"
)

type Client struct {
    *openai.Client
    Model string
}

func NewClient(apiKey, model string) *Client {
    return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Generate(ctx context.Context, prompt string, p ai.GenerateParams) (string, error) {
    model := c.Model
    if model == "" {
        model = openai.GPT4oMini
    }
    maxTokens := p.MaxNewTokens
    if maxTokens <= 0 {
        maxTokens = 128
    }
    req := openai.ChatCompletionRequest{
        Model: model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleUser, Content: prompt},
        },
        Temperature: p.Temperature,
    }
    // For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
    if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
        req.MaxCompletionTokens = maxTokens
    } else {
        req.MaxTokens = maxTokens
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        return "", fmt.Errorf("failed to create chat completion: %w", err)
    }
    if len(resp.Choices) == 0 {
        return "", ai.ErrEmptyCompletion
    }

    out := strings.TrimSpace(resp.Choices[0].Message.Content)
    if out == "" {
        return "", ai.ErrEmptyCompletion
    }
    return out, nil
}
