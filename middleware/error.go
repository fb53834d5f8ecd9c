package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorHandler is the terminal error middleware. Controllers attach typed
// api.Error values (or raw database errors) to the context; this turns the
// last one into the response envelope. Raw GORM errors map to their natural
// statuses: record-not-found to 404, duplicated-key to 409, anything else
// to 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		err := last.Err

		var apiErr *api.Error
		switch {
		case errors.As(err, &apiErr):
			c.JSON(apiErr.Status, api.Response{
				Success: false,
				Message: apiErr.Message,
				Errors:  apiErr.Errors,
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, api.Response{
				Success: false,
				Message: "Resource not found",
			})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, api.Response{
				Success: false,
				Message: "Duplicate entry",
			})
		default:
			logger.Error("unhandled error", "path", c.FullPath(), "error", err)
			c.JSON(http.StatusInternalServerError, api.Response{
				Success: false,
				Message: "Internal Server Error",
			})
		}
	}
}
