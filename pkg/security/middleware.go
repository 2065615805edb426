package security

import (
	"log"
	"net/http"
	"strings"

	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the opaque session token. A
// Bearer token in the Authorization header is accepted as well.
const SessionCookie = "stockeasy_session"

// Context keys set by SessionMiddleware.
const (
	ContextRole     = "role"
	ContextUsername = "username"
	ContextFacility = "facilityID"
	ContextToken    = "sessionToken"
)

// SessionMiddleware resolves the request's token to a stored session and
// stamps role and identity into the request context. Requests without a
// valid session pass through as anonymous; route-level Authorize decides
// what anonymous is allowed to do.
func SessionMiddleware(store SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRole, roles.Anonymous.String())

		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := store.Get(token)
		if err != nil {
			log.Println("Session lookup failed:", err)
			c.Next()
			return
		}
		if session == nil {
			c.Next()
			return
		}

		c.Set(ContextRole, session.Role)
		c.Set(ContextUsername, session.Username)
		c.Set(ContextToken, session.Token)
		if session.FacilityID.Valid {
			c.Set(ContextFacility, session.FacilityID.Int64)
		}
		c.Next()
	}
}

// Authorize ensures the session role meets the required privilege
// level. The rejection carries no detail about the target resource.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RoleFromContext(c).HasPermission(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

func RoleFromContext(c *gin.Context) roles.Role {
	return roles.Role(c.GetString(ContextRole))
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
