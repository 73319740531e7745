package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todoapi/internal/model"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

// requireAuth resolves the request's token to a user or aborts with 401.
// Accepts "Authorization: Token <key>" and "Authorization: Bearer <key>".
func (s *Server) requireAuth(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))

	user, err := s.auth.Resolve(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		c.Abort()
		return
	}

	c.Set(contextUserKey, user)
	c.Set(contextTokenKey, token)
	c.Next()
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	for _, scheme := range []string{"Token ", "Bearer "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// currentUser returns the identity requireAuth stored on the context.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(contextUserKey).(*model.User)
}

func currentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}
