package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/middleware"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/service"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

// GetHistory godoc
// @Summary      Learning history
// @Description  The 10 most recent activities, newest first.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  models.UserLearningHistory
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/v1/users/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	entries, err := h.learning.RecentHistory(c.Request.Context(), middleware.CurrentUser(c), service.HistoryLimit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RecordActivity godoc
// @Summary      Record an activity
// @Description  Appends a history entry and adds its duration to the study time.
// @Tags         History
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ActivityCreate true "Finished activity"
// @Success      201 {object} models.UserLearningHistory
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/v1/users/history [post]
func (h *Handler) RecordActivity(c *gin.Context) {
	var req models.ActivityCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}
	entry, err := h.learning.RecordActivity(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListWords godoc
// @Summary      Saved vocabulary
// @Tags         Vocabulary
// @Produce      json
// @Security     BearerAuth
// @Param        language query string false "Only words of this language"
// @Success      200 {array}  models.UserVocabulary
// @Router       /api/v1/users/vocabulary [get]
func (h *Handler) ListWords(c *gin.Context) {
	words, err := h.learning.ListWords(c.Request.Context(), middleware.CurrentUser(c), c.Query("language"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// AddWord godoc
// @Summary      Save a word
// @Tags         Vocabulary
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.WordCreate true "Word"
// @Success      201 {object} models.UserVocabulary
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/v1/users/vocabulary [post]
func (h *Handler) AddWord(c *gin.Context) {
	var req models.WordCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}
	word, err := h.learning.AddWord(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, word)
}
