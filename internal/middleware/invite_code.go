package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
)

const InviteCodeHeader = "X-Invite-Code"

// InviteCodeMiddleware gates registration behind a shared code.
// An empty code leaves registration open.
func InviteCodeMiddleware(inviteCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if inviteCode == "" {
			c.Next()
			return
		}
		clientKey := c.GetHeader(InviteCodeHeader)
		if subtle.ConstantTimeCompare([]byte(clientKey), []byte(inviteCode)) != 1 {
			apperrors.Respond(c, apperrors.Forbidden("Invalid invite code"))
			return
		}
		c.Next()
	}
}
