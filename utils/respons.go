package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	ErrorCause string `json:"error_cause"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondStatus writes an error envelope that does not originate from the domain
// (unknown route, rate limiting, recovered panic).
func RespondStatus(c *gin.Context, code int, cause string) {
	c.AbortWithStatusJSON(code, ErrorResponse{StatusCode: code, ErrorCause: cause})
}

// RespondError logs err and writes its error envelope.
func RespondError(c *gin.Context, err error, exposeDetail bool) {
	apiErr := AsAPIError(err)
	code := apiErr.StatusCode()

	entry := ErrorLogger.WithFields(logrus.Fields{
		"request_id": c.GetString(RequestIDKey),
		"kind":       apiErr.Kind.String(),
		"status":     code,
		"path":       c.Request.URL.Path,
	})
	if code >= 500 {
		entry.Errorf("request failed: %v", apiErr)
	} else {
		entry.Warnf("request rejected: %v", apiErr)
	}

	c.AbortWithStatusJSON(code, ErrorResponse{
		StatusCode: code,
		ErrorCause: apiErr.Cause(exposeDetail),
	})
}
