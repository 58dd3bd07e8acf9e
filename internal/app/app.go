package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/hash"
	"github.com/riya-sharma-12/LangSync/internal/services/jwt"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
	"github.com/riya-sharma-12/LangSync/internal/services/stream"
)

// chatSyncTimeout bounds the fire-and-forget identity sync so a hung chat
// directory cannot leak goroutines indefinitely.
const chatSyncTimeout = 5 * time.Second

type App struct {
	db     mongodb.Service
	hash   *hash.HashService
	jwt    *jwt.TokenService
	chat   stream.Service
	sentry *sentry.SentryService
	logger *slog.Logger

	env        string
	corsOrigin string
}

func NewApp(
	db mongodb.Service,
	hashes *hash.HashService,
	tokens *jwt.TokenService,
	chat stream.Service,
	sentrySvc *sentry.SentryService,
	logger *slog.Logger,
) *App {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	return &App{
		db:         db,
		hash:       hashes,
		jwt:        tokens,
		chat:       chat,
		sentry:     sentrySvc,
		logger:     logger,
		env:        env,
		corsOrigin: corsOrigin,
	}
}

func (a *App) isProduction() bool {
	return a.env == "production"
}

// syncChatUser mirrors the user into the chat directory. It runs detached
// from the request with its own deadline; failures land in the log, never
// in the caller's response. Invoked after signup and after onboarding.
func (a *App) syncChatUser(user models.User) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), chatSyncTimeout)
		defer cancel()

		if err := a.chat.UpsertUser(ctx, user.ID.Hex(), user.FullName, user.ProfilePic); err != nil {
			a.logger.Error("chat identity sync failed",
				"userId", user.ID.Hex(),
				"error", err,
			)
		}
	}()
}

func (a *App) toSentry(c *gin.Context, handler, errType string, level sentry.Level, err error) {
	a.sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		scope.SetExtra("error_type", errType)
		scope.SetLevel(level)
		if reqID := c.GetHeader("X-Request-ID"); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		a.sentry.CaptureException(err)
	})
}
