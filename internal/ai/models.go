package ai

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the model's description of one diff
type Summary struct {
	User       string        `json:"user"`
	Old        uuid.UUID     `json:"old"`
	New        uuid.UUID     `json:"new"`
	Model      string        `json:"model"`
	Language   string        `json:"language"`
	Text       string        `json:"text"`
	Truncated  bool          `json:"truncated"` // diff text was cut to fit the request
	TokensUsed int           `json:"tokens_used"`
	Duration   time.Duration `json:"duration"`
}

// TokenPricing contains pricing per million tokens for each model
type TokenPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// ModelPricing returns pricing for a model
func ModelPricing(model string) TokenPricing {
	switch model {
	case "sonnet", "claude-sonnet-4-20250514":
		return TokenPricing{InputPerMillion: 3.0, OutputPerMillion: 15.0}
	case "opus", "claude-opus-4-20250514":
		return TokenPricing{InputPerMillion: 15.0, OutputPerMillion: 75.0}
	default: // haiku
		return TokenPricing{InputPerMillion: 0.80, OutputPerMillion: 4.0}
	}
}

// EstimateCost gives an upper bound in USD for a prompt of the given size.
// Roughly four characters per token; the reply is capped at 512 tokens.
func EstimateCost(model string, promptChars int) float64 {
	const (
		systemTokens = 250
		replyTokens  = 512
	)
	pricing := ModelPricing(model)
	input := float64(promptChars/4 + systemTokens)
	return (input/1_000_000)*pricing.InputPerMillion +
		(float64(replyTokens)/1_000_000)*pricing.OutputPerMillion
}
