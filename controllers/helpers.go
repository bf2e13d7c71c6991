package controllers

import (
	"strconv"

	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
)

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ErrValidation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// currentIdentity returns the caller resolved by the auth middleware and writes
// a 401 when there is none.
func currentIdentity(c *gin.Context) (policy.Identity, bool) {
	id, ok := policy.FromContext(c)
	if !ok {
		utils.HandleError(c, utils.ErrUnauthorized("Authentication credentials were not provided."))
	}
	return id, ok
}
