package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/middleware"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleChatConnection godoc
// @Summary      Tutor chat over WebSocket
// @Description  Opens a chat session. Connect with ws:// or wss://.
// @Description  Authentication uses the token query parameter, not the Authorization header.
// @Description  Each text frame is one message; the server answers with {"response","status"} or {"detail"}.
// @Tags         WebSocket
// @Param        token    query    string true  "Access token from /api/v1/auth/login"
// @Param        language query    string false "Target language hint"
// @Success      101      {string} string "Switching Protocols"
// @Failure      401      {object} handler.ErrorResponse
// @Failure      400      {object} handler.ErrorResponse "Inactive user"
// @Router       /ws/chat [get]
func (h *Handler) HandleChatConnection(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		apperrors.Respond(c, apperrors.ErrNotAuthenticated)
		return
	}

	user, err := middleware.ResolveUser(c.Request.Context(), h.tokens, h.users, tokenString)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.log.WithError(err).WithField("user_id", user.ID).Warn("websocket upgrade failed")
		return
	}

	h.manageTextSession(c.Request.Context(), conn, user, c.Query("language"))
}
