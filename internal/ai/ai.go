// Package ai wraps the generative model calls used for chat moderation
// and feedback summarization. Callers depend on the small interfaces here
// so tests can substitute deterministic fakes.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the model call failed or returned output we
// could not interpret. Callers must treat it as a hard failure, never as
// an implicit approval.
var ErrUnavailable = errors.New("ai: service unavailable")

// ModerationResult is the verdict for one chat message.
type ModerationResult struct {
	// IsAppropriate is true when the message is clean and professional.
	IsAppropriate bool `json:"isAppropriate"`
	// ModeratedText is the original message when appropriate, or the
	// censored version when not.
	ModeratedText string `json:"moderatedText"`
}

// Moderator analyzes a chat message before it is stored.
type Moderator interface {
	Moderate(ctx context.Context, text string) (ModerationResult, error)
}

// Summarizer condenses a piece of community feedback.
type Summarizer interface {
	Summarize(ctx context.Context, feedback string) (string, error)
}

// Disabled stands in when no API key is configured. Every call fails
// with ErrUnavailable, so dependent writes stay blocked.
type Disabled struct{}

func (Disabled) Moderate(context.Context, string) (ModerationResult, error) {
	return ModerationResult{}, ErrUnavailable
}

func (Disabled) Summarize(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
