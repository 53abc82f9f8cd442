package testutil

import (
	"context"

	"github.com/feedbacksapp/feedbacks/internal/ai"
)

// StaticModerator returns a fixed verdict for every message. When Err is
// set it is returned instead, which lets tests exercise fail-closed paths.
type StaticModerator struct {
	Result ai.ModerationResult
	Err    error
}

func (m StaticModerator) Moderate(_ context.Context, text string) (ai.ModerationResult, error) {
	if m.Err != nil {
		return ai.ModerationResult{}, m.Err
	}
	res := m.Result
	if res.ModeratedText == "" && res.IsAppropriate {
		res.ModeratedText = text
	}
	return res, nil
}

// EchoModerator approves every message unchanged.
func EchoModerator() StaticModerator {
	return StaticModerator{Result: ai.ModerationResult{IsAppropriate: true}}
}

// StaticSummarizer returns a fixed summary, or Err when set.
type StaticSummarizer struct {
	Summary string
	Err     error
}

func (s StaticSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Summary, nil
}
