package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
)

// HandleMe returns the session user resolved by the auth middleware.
func (a *App) HandleMe(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}
