package apperrors

import (
	"github.com/gin-gonic/gin"
)

// Respond aborts the request with err rendered as {"detail": ...}.
// The underlying error is attached to the context for the request logger.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	_ = c.Error(err)

	if appErr.Kind == KindUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	body := gin.H{"detail": appErr.Detail}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), body)
}
