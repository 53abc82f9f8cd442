// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); everything specific to
// FeedBacks lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: feedbacks-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Gemini configuration for moderation and summarization
	GeminiAPIKey          string // API key for the Gemini API
	GeminiModerationModel string // Model used for chat moderation
	GeminiSummaryModel    string // Model used for feedback summarization

	// FeedbackTrimWhitespace selects whether feedback text is trimmed
	// before the non-empty check. Whitespace-only feedback is rejected
	// when true.
	FeedbackTrimWhitespace bool
}
