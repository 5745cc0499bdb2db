package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, key string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: geminiModel}, nil
}

func (g *Gemini) Ask(ctx context.Context, prompt, system string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	var sb strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if txt, ok := p.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		break
	}
	if sb.Len() == 0 {
		return NoAnswer, nil
	}
	return sb.String(), nil
}

func (g *Gemini) Close() error { return g.client.Close() }
