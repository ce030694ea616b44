package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
)

// RoleMiddleware lets the request through when the authenticated user's
// global role is one of requiredRoles. It must run after AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := middleware.GetActor(c)
		if err != nil {
			responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(actor.Role, required) {
				c.Next()
				return
			}
		}
		responses.SendError(c, http.StatusForbidden, "You don't have permission to access this resource")
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin)
}
