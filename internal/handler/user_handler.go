/**
* Name:         user_handler.go
* Description:  Account and profile endpoints
* Workflow:     me, profile, user lookup, admin listing
 */
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/middleware"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

// GetMe godoc
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.User
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe godoc
// @Summary      Update current user
// @Description  Partial update. A new password is hashed before it is stored.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UserUpdate true "Fields to change"
// @Success      200 {object} models.User
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/v1/users/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}
	user, err := h.users.Update(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProfile godoc
// @Summary      Learning profile
// @Description  Languages, per-language level and study counters of the current user.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.ProfileResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/v1/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update learning profile
// @Description  learningLanguages replaces the whole language set; missing levels default to A1.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ProfileUpdate true "Profile fields"
// @Success      200 {object} models.ProfileResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/v1/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}
	profile, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUser godoc
// @Summary      User by id
// @Description  Users may read themselves; anyone else requires a superuser.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User id"
// @Success      200 {object} models.User
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperrors.Respond(c, apperrors.BadRequest("Invalid user id"))
		return
	}

	current := middleware.CurrentUser(c)
	if uint(id) == current.ID {
		c.JSON(http.StatusOK, current)
		return
	}
	if !current.IsSuperuser {
		apperrors.Respond(c, apperrors.ErrNotEnoughPrivileges)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        skip  query int false "Offset" default(0)
// @Param        limit query int false "Page size" default(100)
// @Success      200 {array}  models.User
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse
// @Router       /api/v1/users/ [get]
func (h *Handler) ListUsers(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.BadRequest(key + " must be an integer")
	}
	return n, nil
}
