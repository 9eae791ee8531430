package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrEmptyCompletion indicates the provider answered but produced no usable text.
var ErrEmptyCompletion = errors.New("ai returned empty completion")
