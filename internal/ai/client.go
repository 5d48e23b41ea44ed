package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrNoToken is returned when neither the config nor the environment holds an API token
var ErrNoToken = errors.New("no API token provided: set --ai-token flag or ANTHROPIC_API_KEY environment variable")

// Completer sends one system+user prompt pair and returns the text reply
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, int, error)
}

// Client wraps the Anthropic API client
type Client struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new AI client
func NewClient(model string, apiToken string, timeoutSeconds int) (*Client, error) {
	// Resolve API token: parameter > environment variable
	token := apiToken
	if token == "" {
		token = os.Getenv("ANTHROPIC_API_KEY")
	}
	if token == "" {
		return nil, ErrNoToken
	}

	client := anthropic.NewClient(option.WithAPIKey(token))

	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:  client,
		model:   MapModelName(model),
		timeout: timeout,
	}, nil
}

// MapModelName converts friendly model names to model IDs
func MapModelName(name string) string {
	switch strings.ToLower(name) {
	case "haiku":
		return "claude-3-5-haiku-latest"
	case "sonnet":
		return "claude-sonnet-4-20250514"
	case "opus":
		return "claude-opus-4-20250514"
	default:
		// summaries are short, the cheap model is enough
		return "claude-3-5-haiku-latest"
	}
}

// Complete sends a single message and returns the reply text and tokens used
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.F(int64(512)),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return "", 0, fmt.Errorf("API request failed: %w", err)
	}

	text := extractTextContent(message)
	if text == "" {
		return "", 0, errors.New("empty response from API")
	}

	return text, int(message.Usage.InputTokens + message.Usage.OutputTokens), nil
}

// extractTextContent extracts text from the message response
func extractTextContent(message *anthropic.Message) string {
	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			text.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(text.String())
}

// GetModel returns the current model being used
func (c *Client) GetModel() string {
	return c.model
}
