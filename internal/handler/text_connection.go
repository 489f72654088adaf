package handler

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/tutor"
)

const (
	sessionStatusConnected = "connected"
	maxFrameSize           = 16 << 10
)

func greeting(language string) string {
	if lang, ok := tutor.LookupLanguage(language); ok {
		return fmt.Sprintf("Connected. Let's practise %s, send your first message.", lang.Name)
	}
	return "Connected. Send your first message."
}

func (h *Handler) manageTextSession(ctx context.Context, conn *websocket.Conn, user *models.User, language string) {
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	log := h.log.WithFields(logrus.Fields{"user_id": user.ID, "language": language})
	log.Info("chat session started")

	if err := conn.WriteJSON(ChatResponse{Response: greeting(language), Status: sessionStatusConnected}); err != nil {
		log.WithError(err).Warn("failed to send greeting")
		return
	}

	messages := 0
ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("chat session read failed")
			}
			break ReadLoop
		}

		if messageType != websocket.TextMessage {
			log.WithField("type", messageType).Debug("ignoring non-text frame")
			continue
		}
		messages++

		var frame any
		reply, err := h.tutor.Reply(ctx, string(message), language)
		if err != nil {
			frame = ErrorResponse{Detail: apperrors.From(err).Detail}
		} else {
			frame = ChatResponse{Response: reply, Status: "success"}
		}
		if err := conn.WriteJSON(frame); err != nil {
			log.WithError(err).Warn("chat session write failed")
			break ReadLoop
		}
	}
	log.WithField("messages", messages).Info("chat session ended")
}
