package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Kind    ErrorKind   `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// HandleError writes err using the status derived from its kind.
// Internal errors are logged and their cause is not exposed to the client.
func HandleError(c *gin.Context, err error) {
	kind := KindOf(err)
	message := err.Error()

	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch kind {
	case KindInternal:
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		message = "internal server error"
	case KindNotFound:
		if appErr == nil {
			message = "not found"
		}
	case KindConflict:
		if appErr == nil {
			message = "a record with the same unique value already exists"
		}
	}

	c.JSON(StatusFor(kind), JSONResponse{
		Status:  false,
		Message: message,
		Kind:    kind,
	})
}

// BindError reports a request body that could not be decoded or validated.
func BindError(c *gin.Context, err error) {
	c.JSON(StatusFor(KindValidation), JSONResponse{
		Status:  false,
		Message: err.Error(),
		Kind:    KindValidation,
	})
}
