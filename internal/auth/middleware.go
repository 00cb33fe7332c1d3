package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"uptask/internal/core"
	"uptask/internal/domain"
)

// userKey is where the middleware stores the resolved account on the
// gin context.
const userKey = "auth_user"

// CurrentUser returns the account resolved by RequireUser. Handlers
// behind the middleware may assume it is present.
func CurrentUser(c *gin.Context) *domain.User {
	u, _ := c.Get(userKey)
	user, _ := u.(*domain.User)
	return user
}

// RequireUser authenticates the bearer token and loads the account it
// was issued for. A valid token for a deleted account is a 401, not a
// 500: the token outlived the identity.
func RequireUser(issuer *Issuer, users core.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing bearer token"})
			return
		}
		userID, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unknown account"})
				return
			}
			log.Error().Err(err).Str("module", "auth").Msg("resolve bearer user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}
