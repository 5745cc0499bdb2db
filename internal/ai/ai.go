// Package ai answers free-form questions from dashboard users through an
// external language model.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"

	NoAnswer = "Nema odgovora."
)

var ErrNotConfigured = errors.New("ai provider not configured")

type Provider interface {
	Ask(ctx context.Context, prompt, system string) (string, error)
}

// New builds the provider named by kind. A provider without an API key is
// returned as a stub that always fails, so the route stays mounted.
func New(ctx context.Context, kind, deepSeekKey, geminiKey string, lg *zap.SugaredLogger) (Provider, error) {
	switch strings.ToLower(kind) {
	case "", ProviderDeepSeek:
		if deepSeekKey == "" {
			lg.Warnw("DEEPSEEK_API_KEY not set, ai chat disabled")
			return unavailable{}, nil
		}
		return NewDeepSeek(deepSeekKey, nil), nil
	case ProviderGemini:
		if geminiKey == "" {
			lg.Warnw("GEMINI_API_KEY not set, ai chat disabled")
			return unavailable{}, nil
		}
		return NewGemini(ctx, geminiKey)
	}
	return nil, fmt.Errorf("unknown AI_PROVIDER %q", kind)
}

type unavailable struct{}

func (unavailable) Ask(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}
