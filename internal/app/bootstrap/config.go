// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for FeedBacks.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: FEEDBACKS_MONGO_URI, FEEDBACKS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "feedbacks", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "feedbacks-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key for moderation and summarization"},
	{Name: "gemini_moderation_model", Default: "", Desc: "Gemini model for chat moderation (blank uses the built-in default)"},
	{Name: "gemini_summary_model", Default: "", Desc: "Gemini model for feedback summarization (blank uses the built-in default)"},

	{Name: "feedback_trim_whitespace", Default: true, Desc: "Reject whitespace-only feedback text"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FEEDBACKS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		GeminiAPIKey:          appValues.String("gemini_api_key"),
		GeminiModerationModel: appValues.String("gemini_moderation_model"),
		GeminiSummaryModel:    appValues.String("gemini_summary_model"),

		FeedbackTrimWhitespace: appValues.Bool("feedback_trim_whitespace"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are dialed.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.GeminiAPIKey == "" {
		if coreCfg.Env == "prod" {
			return fmt.Errorf("gemini_api_key is required in production")
		}
		// Chat posting and summarization fail closed without a key.
		logger.Warn("gemini_api_key is not set; moderation and summarization will be unavailable")
	}

	return nil
}
