package middleware

import (
	"rento/constants"
	"rento/models"
	"rento/response"
	"rento/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to a live session and its user
func AuthMiddleware(tokens *services.TokenService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		user, session, err := users.CurrentUser(c.Request.Context(), claims.SessionID)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextCurrentUser, user)
		c.Set(constants.ContextSession, session)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(constants.ContextCurrentUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentSession returns the session stored by AuthMiddleware
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(constants.ContextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
