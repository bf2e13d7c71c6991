package middlewares

import (
	"time"

	"github.com/etceter4/littlelemon/policy"
	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if id, ok := policy.FromContext(c); ok {
			fields["user"] = id.Username
		}

		entry := utils.InfoLogger.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			utils.ErrorLogger.WithFields(fields).Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
