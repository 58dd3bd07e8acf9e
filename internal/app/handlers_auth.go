package app

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
)

// randomAvatar assigns each new user one of 100 identicon seeds.
func randomAvatar() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://api.dicebear.com/9.x/identicon/svg?seed=%d", idx)
}

// setSessionCookie transmits the session token as an HTTP-only cookie. In
// production the frontend is served cross-site, so the cookie must be
// Secure with SameSite=None; in development Lax keeps local testing easy.
func (a *App) setSessionCookie(c *gin.Context, token string) {
	if a.isProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.CookieName, token, int(a.jwt.TokenDuration().Seconds()), "/", "", a.isProduction(), true)
}

// clearSessionCookie clears the cookie with the same path and flags it was
// set with; a mismatch and the browser keeps the old cookie.
func (a *App) clearSessionCookie(c *gin.Context) {
	if a.isProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", "", a.isProduction(), true)
}

func (a *App) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, MsgInvalidRequestBody)
		return
	}

	if msg := validateSignupInput(req); msg != "" {
		writeError(c, msg)
		return
	}

	// No existence pre-check: the unique index decides, so two concurrent
	// signups with the same email cannot both win.
	createdUser, err := a.db.CreateUser(c.Request.Context(), models.NewUser{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: randomAvatar(),
	})
	if err != nil {
		if errors.Is(err, mongodb.ErrDBDuplicatedEntry) {
			writeError(c, MsgEmailExists)
			return
		}
		a.toSentry(c, "signup", "db", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	a.syncChatUser(createdUser)

	token, err := a.jwt.GenerateToken(createdUser.ID.Hex())
	if err != nil {
		a.toSentry(c, "signup", "jwt", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	a.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, UserResponse{Success: true, User: createdUser})
}

func (a *App) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, MsgInvalidRequestBody)
		return
	}

	if msg := validateLoginInput(req); msg != "" {
		writeError(c, msg)
		return
	}

	user, err := a.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongodb.ErrDBNotFound) {
			writeError(c, MsgInvalidCredentials)
			return
		}
		a.toSentry(c, "login", "db", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	if !a.hash.CheckPasswordHash(req.Password, user.Password) {
		writeError(c, MsgInvalidCredentials)
		return
	}

	token, err := a.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		a.toSentry(c, "login", "jwt", sentry.LevelError, err)
		writeError(c, MsgInternalError)
		return
	}

	// Scrub the hash before the record leaves the handler.
	user.Password = ""

	a.setSessionCookie(c, token)
	c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// HandleLogout clears the session cookie. The token itself stays valid
// until natural expiry; there is no server-side revocation list.
func (a *App) HandleLogout(c *gin.Context) {
	a.clearSessionCookie(c)
	c.JSON(http.StatusOK, LogoutResponse{Success: true, Message: MsgLogoutSuccessful})
}
