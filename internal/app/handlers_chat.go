package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
)

// HandleChatToken mints a chat token for the session user so the frontend
// can connect to the chat provider as that identity.
func (a *App) HandleChatToken(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, MsgInternalError)
		return
	}

	token, err := a.chat.CreateToken(user.ID.Hex())
	if err != nil {
		a.toSentry(c, "chat_token", "stream", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, ChatTokenResponse{Success: true, Token: token})
}
