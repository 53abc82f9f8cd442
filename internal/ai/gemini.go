package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	defaultModerationModel = "gemini-2.0-flash"
	defaultSummaryModel    = "gemini-2.0-flash"

	moderationPrompt = `You are a content moderator for a professional chat application. Analyze the following user message. Determine if it contains any profanity, hate speech, or otherwise inappropriate content for a professional setting.
If the message is inappropriate, replace the offensive words with '****'.

Respond with a JSON object. The object must have two fields:
1.  "isAppropriate": A boolean. Set to 'true' if the message is clean and professional, 'false' otherwise.
2.  "moderatedText": A string. This should contain the original message if it is appropriate, or the censored version if it is not.

Message to analyze:
`

	summaryPrompt = `You are an assistant that summarizes community feedback for a product team. Condense the following feedback into two or three sentences that preserve the main points and overall tone. Return only the summary text, nothing else.

Feedback:
`
)

// Config selects the models used for each task. Zero values fall back to
// the defaults above.
type Config struct {
	APIKey          string
	ModerationModel string
	SummaryModel    string
}

// Client talks to the Gemini API. It implements Moderator and Summarizer.
type Client struct {
	client          *genai.Client
	moderationModel string
	summaryModel    string
	log             *zap.Logger
}

// NewClient dials the Gemini API. The caller owns Close.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	if cfg.ModerationModel == "" {
		cfg.ModerationModel = defaultModerationModel
	}
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = defaultSummaryModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:          gc,
		moderationModel: cfg.ModerationModel,
		summaryModel:    cfg.SummaryModel,
		log:             logger,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Moderate sends one chat message through the moderation prompt.
// Empty or whitespace-only input is approved without an API call.
func (c *Client) Moderate(ctx context.Context, text string) (ModerationResult, error) {
	if strings.TrimSpace(text) == "" {
		return ModerationResult{IsAppropriate: true, ModeratedText: ""}, nil
	}

	model := c.client.GenerativeModel(c.moderationModel)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(moderationPrompt+quoteForPrompt(text)))
	if err != nil {
		c.log.Warn("moderation request failed", zap.Error(err))
		return ModerationResult{}, ErrUnavailable
	}

	raw := responseText(resp)
	if raw == "" {
		c.log.Warn("moderation response was empty")
		return ModerationResult{}, ErrUnavailable
	}

	var out ModerationResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		c.log.Warn("moderation response was not valid JSON",
			zap.String("raw", raw),
			zap.Error(err))
		return ModerationResult{}, ErrUnavailable
	}
	return out, nil
}

// Summarize condenses one piece of feedback into a short summary.
func (c *Client) Summarize(ctx context.Context, feedback string) (string, error) {
	model := c.client.GenerativeModel(c.summaryModel)

	resp, err := model.GenerateContent(ctx, genai.Text(summaryPrompt+quoteForPrompt(feedback)))
	if err != nil {
		c.log.Warn("summary request failed", zap.Error(err))
		return "", ErrUnavailable
	}

	summary := strings.TrimSpace(responseText(resp))
	if summary == "" {
		c.log.Warn("summary response was empty")
		return "", ErrUnavailable
	}
	return summary, nil
}

func quoteForPrompt(s string) string {
	return `"` + s + `"` + "\n"
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// stripCodeFence unwraps ```json ... ``` blocks some models emit even when
// asked for raw JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
