package utils

import (
	"net/http"

	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse sends a success envelope with the given status code.
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Status: "success", Message: message, Data: data})
}

// FailResponse sends a failure envelope with the given status code.
func FailResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Status: "fail", Message: message})
}

// AbortWithError translates a classified error into a failure envelope and
// aborts the request. Unclassified errors become 500 and their detail stays
// in the log rather than the response body.
func AbortWithError(c *gin.Context, err error) {
	kind, ok := apierrors.KindOf(err)
	if !ok {
		logger.Errorf("Unclassified error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
			Status:  "fail",
			Message: "internal server error",
		})
		return
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), Response{
		Status:  "fail",
		Message: err.Error(),
	})
}
