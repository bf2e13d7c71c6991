package middlewares

import (
	"strings"

	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
)

// IdentityResolver turns the user id carried by an access token into an Identity.
type IdentityResolver interface {
	ResolveIdentity(userID uint) (policy.Identity, error)
}

// AuthMiddleware requires a valid access token and stores the caller's
// Identity on the context. Roles are read from the database on every request
// so group changes apply without issuing new tokens.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.HandleError(c, utils.ErrUnauthorized("Authentication credentials were not provided."))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.HandleError(c, utils.ErrUnauthorized("Authorization header must use the Bearer scheme."))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ParseToken(tokenString, utils.TokenTypeAccess)
		if err != nil || claims.UserID == 0 {
			utils.HandleError(c, utils.ErrUnauthorized("Given token not valid for any token type"))
			c.Abort()
			return
		}

		id, err := resolver.ResolveIdentity(claims.UserID)
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		policy.SetIdentity(c, id)
		c.Set("userID", id.UserID)
		c.Next()
	}
}
