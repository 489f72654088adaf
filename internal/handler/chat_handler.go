package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

type ChatRequest struct {
	Message  string `json:"message" binding:"required" example:"Write three short French sentences about the weather"`
	Language string `json:"language" example:"french"`
}

type ChatResponse struct {
	Response string `json:"response" example:"Il fait beau aujourd'hui."`
	Status   string `json:"status" example:"success"`
}

// Chat godoc
// @Summary      Ask the tutor
// @Description  Forwards the message to the language model behind a fixed tutor prompt.
// @Description  Reasoning blocks are removed from the answer.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body handler.ChatRequest true "Message and target language"
// @Success      200 {object} handler.ChatResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      429 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse "Upstream model failed"
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}

	reply, err := h.tutor.Reply(c.Request.Context(), req.Message, req.Language)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: reply, Status: "success"})
}
