package middlewares

import (
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-orders/utils"
)

// Recovery turns a panic into a 500 error envelope instead of a bare response.
// The panic is logged through utils.ErrorLogger as it is at the time of the panic.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		utils.ErrorLogger.WithField("request_id", c.GetString(utils.RequestIDKey)).
			WithField("stack", string(debug.Stack())).
			Errorf("panic recovered: %v", recovered)
		utils.RespondError(c, utils.NewServerError("internal failure"), false)
	})
}
