/**
* Name:         auth_handler.go
* Description:  Login and registration endpoints
 */
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

// LoginRequest arrives as an OAuth2 password form; JSON is accepted too.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required" example:"lily"`
	Password string `form:"password" json:"password" binding:"required" example:"password123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges username and password for a bearer token valid for 7 days by default.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "Username"
// @Param        password formData string true "Password"
// @Success      200 {object} handler.TokenResponse
// @Failure      400 {object} handler.ErrorResponse "Inactive user or malformed form"
// @Failure      401 {object} handler.ErrorResponse "Incorrect username or password"
// @Failure      429 {object} handler.ErrorResponse "Too many attempts"
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, h.cfg.Auth.AccessTokenTTL)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	h.log.WithField("user_id", user.ID).Info("user logged in")
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// CreateUser godoc
// @Summary      Register
// @Description  Creates an account. When an invite code is configured it must be sent in X-Invite-Code.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        X-Invite-Code header string false "Invite code"
// @Param        request body models.UserCreate true "New account"
// @Success      200 {object} models.User
// @Failure      400 {object} handler.ErrorResponse "Validation failed or username/email taken"
// @Failure      403 {object} handler.ErrorResponse "Invalid invite code"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/v1/users/ [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, validation.Translate(err))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
