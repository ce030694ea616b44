package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/logger"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
	"github.com/DhavalSuthar-24/squadup/pkg/token"
)

const (
	AuthUserIDKey   = logger.UserIDKey
	AuthUserRoleKey = "auth_user_role"
)

var errNoActor = errors.New("no authenticated user in context")

// AuthMiddleware requires a valid bearer token for an existing account.
func AuthMiddleware(jwtSecret string, users user.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			responses.SendError(c, http.StatusUnauthorized, "Authorization header is required. Expected: Bearer <token>")
			return
		}
		if !authenticate(c, raw, jwtSecret, users) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware authenticates when a bearer token is present and lets
// anonymous requests through untouched.
func OptionalAuthMiddleware(jwtSecret string, users user.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if ok && !authenticate(c, raw, jwtSecret, users) {
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(c *gin.Context, raw, jwtSecret string, users user.UserRepository) bool {
	claims, err := token.ValidateJWT(raw, jwtSecret)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Invalid or expired token")
		return false
	}

	// role comes from the stored account so demotions take effect immediately
	u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load user")
		return false
	}
	if u == nil || u.IsPlaceholder {
		responses.SendError(c, http.StatusUnauthorized, "User not found or inactive")
		return false
	}

	c.Set(AuthUserIDKey, u.ID)
	c.Set(AuthUserRoleKey, u.Role)
	return true
}

// GetActor returns the authenticated caller.
func GetActor(c *gin.Context) (user.Actor, error) {
	id, ok := c.Get(AuthUserIDKey)
	if !ok {
		return user.Actor{}, errNoActor
	}
	uid, ok := id.(uint)
	if !ok {
		return user.Actor{}, errNoActor
	}
	role, _ := c.Get(AuthUserRoleKey)
	roleStr, _ := role.(string)
	return user.Actor{UserID: uid, Role: roleStr}, nil
}

// GetOptionalActor reports whether the request is authenticated.
func GetOptionalActor(c *gin.Context) (*user.Actor, bool) {
	actor, err := GetActor(c)
	if err != nil {
		return nil, false
	}
	return &actor, true
}
