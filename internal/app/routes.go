// Package app provides HTTP handlers for the LangSync API.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
)

// ----------------------------------------------------------------------------
// Route Registration
// ----------------------------------------------------------------------------

func (a *App) RegisterRoutes() *gin.Engine {
	router := gin.New()

	// Global middleware chain
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.CORS(a.corsOrigin))

	api := router.Group("/api")
	{
		// Health check routes (public)
		health := api.Group("/health")
		{
			health.GET("/readiness", a.HandleReadiness)
			health.GET("/liveness", a.HandleLiveness)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", a.HandleSignup)
			auth.POST("/login", a.HandleLogin)
			auth.POST("/logout", a.HandleLogout)

			// Session-protected auth routes
			session := auth.Group("")
			session.Use(middleware.Authenticate(a.jwt, a.db))
			{
				session.POST("/onboarding", a.HandleOnboard)
				session.GET("/me", a.HandleMe)
			}
		}

		// Chat routes (protected)
		chat := api.Group("/chat")
		chat.Use(middleware.Authenticate(a.jwt, a.db))
		{
			chat.GET("/token", a.HandleChatToken)
		}
	}

	return router
}
