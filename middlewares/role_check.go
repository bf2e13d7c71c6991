package middlewares

import (
	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
)

// RequireAction aborts with 403 unless the authenticated caller may perform
// action. It must run after AuthMiddleware.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := policy.FromContext(c)
		if !ok {
			utils.HandleError(c, utils.ErrUnauthorized("Authentication credentials were not provided."))
			c.Abort()
			return
		}
		if err := policy.Check(id, action); err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
