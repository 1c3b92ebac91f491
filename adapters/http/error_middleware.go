package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/logger"
)

// ErrorMiddleware translates errors attached via c.Error() into the JSON
// error envelope. Handlers return early after c.Error(); the mapping to an
// HTTP status lives in apperror, not in the handlers.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("An unexpected error occurred", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status == http.StatusInternalServerError {
			log.Error("request failed", appErr, zap.String("path", c.Request.URL.Path))
		}

		c.JSON(status, appErr.ToJSON())
	}
}
