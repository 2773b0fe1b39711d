// Package claude adapts the Anthropic Messages API to the TextGenerator
// interface consumed by the generation service.
package claude

import (
	"context"
	"fmt"
	"log/slog"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/conceptdost/conceptdost-backend/internal/config"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// Client wraps the Anthropic SDK with a fixed model and token budget.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// New builds a Client from LLM config.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	return &Client{
		api:       anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "claude"),
	}
}

// GenerateText sends a single-turn user prompt and returns the raw text of
// the first content block. Upstream failures and empty responses are wrapped
// in domain.ErrUpstream so callers can map them uniformly.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.Error("messages api call failed", "error", err)
		return "", fmt.Errorf("claude api call: %w: %v", domain.ErrUpstream, err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("claude returned no content blocks: %w", domain.ErrUpstream)
	}

	text := msg.Content[0].Text
	if text == "" {
		return "", fmt.Errorf("claude returned an empty text block: %w", domain.ErrUpstream)
	}

	c.log.Debug("messages api call completed",
		"model", string(c.model),
		"output_len", len(text),
	)

	return text, nil
}
