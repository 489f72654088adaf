package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/auth"
	"github.com/lianruiying/Language-Tutor/internal/models"
)

const currentUserKey = "current_user"

type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" whose subject is an
// existing, active user, and stores that user in the context.
func AuthMiddleware(tokens *auth.TokenManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperrors.Respond(c, apperrors.ErrNotAuthenticated)
			return
		}
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			apperrors.Respond(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		user, err := ResolveUser(c.Request.Context(), tokens, users, strings.TrimSpace(tokenString))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// ResolveUser turns a token into its active user.
func ResolveUser(ctx context.Context, tokens *auth.TokenManager, users UserLoader, tokenString string) (*models.User, error) {
	userID, err := tokens.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.Wrap(err, apperrors.KindUnauthorized, "Token has expired")
		}
		return nil, apperrors.Wrap(err, apperrors.KindUnauthorized, apperrors.ErrInvalidCredentials.Detail)
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}
	return user, nil
}

// SuperuserOnly must run after AuthMiddleware.
func SuperuserOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperuser {
			apperrors.Respond(c, apperrors.ErrNotEnoughPrivileges)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil outside AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
