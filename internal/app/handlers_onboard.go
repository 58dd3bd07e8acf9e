package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
)

// HandleOnboard completes the one-time profile step. All five profile
// fields plus the onboarded flag are applied in a single store update, so a
// validation failure leaves the user record untouched.
func (a *App) HandleOnboard(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, MsgInternalError)
		return
	}

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, MsgInvalidRequestBody)
		return
	}

	if missing := missingOnboardFields(req); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, MissingFieldsResponse{
			Message:       MsgAllFieldsRequired,
			MissingFields: missing,
		})
		return
	}

	updatedUser, err := a.db.UpdateUserProfile(c.Request.Context(), user.ID.Hex(), models.OnboardUser{
		FullName:         req.FullName,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
	})
	if err != nil {
		if errors.Is(err, mongodb.ErrDBNotFound) {
			writeError(c, MsgUserNotFound)
			return
		}
		a.toSentry(c, "onboard", "db", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	a.syncChatUser(updatedUser)

	c.JSON(http.StatusOK, UserResponse{Success: true, User: updatedUser})
}
