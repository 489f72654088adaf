package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary  Liveness
// @Tags     Status
// @Produce  json
// @Success  200 {object} handler.StatusResponse
// @Router   / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok", Message: "Server is running"})
}

// Test godoc
// @Summary  Configuration check
// @Description  Reports whether an LLM API key is configured.
// @Tags     Status
// @Produce  json
// @Success  200 {object} handler.StatusResponse
// @Router   /test [get]
func (h *Handler) Test(c *gin.Context) {
	configured := h.cfg.LLMConfigured()
	c.JSON(http.StatusOK, StatusResponse{
		Status:        "ok",
		Message:       "API is working",
		APIConfigured: &configured,
	})
}
