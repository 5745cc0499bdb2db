package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	deepSeekURL   = "https://api.deepseek.com/v1/chat/completions"
	deepSeekModel = "deepseek-chat"
)

type DeepSeek struct {
	key    string
	url    string
	client *http.Client
}

// NewDeepSeek returns a client for the DeepSeek chat completions API. A nil
// client gets a 60 second timeout.
func NewDeepSeek(key string, client *http.Client) *DeepSeek {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &DeepSeek{key: key, url: deepSeekURL, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (d *DeepSeek) Ask(ctx context.Context, prompt, system string) (string, error) {
	req := chatRequest{Model: deepSeekModel}
	if system != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: system})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.key)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("deepseek: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("deepseek: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("deepseek: decode: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return NoAnswer, nil
	}
	return out.Choices[0].Message.Content, nil
}
