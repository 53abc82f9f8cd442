// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/feedbacksapp/feedbacks/internal/ai"
	authfeature "github.com/feedbacksapp/feedbacks/internal/app/features/auth"
	chatfeature "github.com/feedbacksapp/feedbacks/internal/app/features/chat"
	feedbackfeature "github.com/feedbacksapp/feedbacks/internal/app/features/feedback"
	healthfeature "github.com/feedbacksapp/feedbacks/internal/app/features/health"
	profilefeature "github.com/feedbacksapp/feedbacks/internal/app/features/profile"
	recommendationsfeature "github.com/feedbacksapp/feedbacks/internal/app/features/recommendations"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	authaccountstore "github.com/feedbacksapp/feedbacks/internal/app/store/authaccounts"
	chatstore "github.com/feedbacksapp/feedbacks/internal/app/store/chat"
	feedbacklogstore "github.com/feedbacksapp/feedbacks/internal/app/store/feedbacklogs"
	recommendationstore "github.com/feedbacksapp/feedbacks/internal/app/store/recommendations"
	userstore "github.com/feedbacksapp/feedbacks/internal/app/store/users"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. All data access flows through the
// stores, and every store call carries the caller's principal, so the
// access policy is evaluated on every operation regardless of route.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := sysauth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	engine := accesspolicy.New(accesspolicy.Config{
		TrimFeedbackWhitespace: appCfg.FeedbackTrimWhitespace,
	})

	var moderator ai.Moderator = ai.Disabled{}
	var summarizer ai.Summarizer = ai.Disabled{}
	if deps.AIClient != nil {
		moderator = deps.AIClient
		summarizer = deps.AIClient
	}

	db := deps.MongoDatabase
	users := userstore.New(db, engine)
	accounts := authaccountstore.New(db)
	recs := recommendationstore.New(db, engine)
	chatMessages := chatstore.New(db, engine, moderator)
	feedbackLogs := feedbacklogstore.New(db, engine)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authfeature.NewHandler(sessionMgr, accounts, users, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	recHandler := recommendationsfeature.NewHandler(recs, users, logger)
	r.Mount("/recommendations", recommendationsfeature.Routes(recHandler, sessionMgr))

	chatHandler := chatfeature.NewHandler(chatMessages, logger)
	r.Mount("/chat", chatfeature.Routes(chatHandler, sessionMgr))

	feedbackHandler := feedbackfeature.NewHandler(feedbackLogs, summarizer, logger)
	r.Mount("/feedback", feedbackfeature.Routes(feedbackHandler, sessionMgr))

	return r, nil
}
