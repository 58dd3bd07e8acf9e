package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. Login failures deliberately share one message so
// a caller cannot probe which of email or password was wrong.
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgAllFieldsRequired  = "All fields are required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgInvalidEmail       = "Invalid email format"
	MsgEmailExists        = "Email already exists, please use a different one"
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserNotFound       = "User not found"
	MsgInternalError      = "Internal Server Error"
	MsgLogoutSuccessful   = "Logout successful"
)

var messageStatusMap = map[string]int{
	MsgInvalidRequestBody: http.StatusBadRequest,
	MsgAllFieldsRequired:  http.StatusBadRequest,
	MsgPasswordTooShort:   http.StatusBadRequest,
	MsgInvalidEmail:       http.StatusBadRequest,
	MsgEmailExists:        http.StatusBadRequest,
	MsgInvalidCredentials: http.StatusUnauthorized,
	MsgUserNotFound:       http.StatusNotFound,
	MsgInternalError:      http.StatusInternalServerError,
}

func writeError(c *gin.Context, msg string) {
	status, ok := messageStatusMap[msg]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, MessageResponse{Message: msg})
}
