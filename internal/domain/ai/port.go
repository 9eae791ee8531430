package ai

import "context"

// GenerateParams are the knobs every backend understands. Backends that
// have no native equivalent for a field just ignore it.
type GenerateParams struct {
	MaxNewTokens   int
	Temperature    float32
	ReturnFullText bool
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string, p GenerateParams) (string, error)
}
