// Package api defines the response envelope and the typed error every
// controller signals failures with. A terminal middleware normalizes both
// into the same JSON shape.
package api

import "github.com/gin-gonic/gin"

type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Error carries an HTTP status and a caller-facing message through the gin
// error chain to the error middleware.
type Error struct {
	Status  int
	Message string
	Errors  []string
}

func (e *Error) Error() string { return e.Message }

func NewError(status int, message string, errs ...string) *Error {
	return &Error{Status: status, Message: message, Errors: errs}
}

// Abort records err on the context and stops the handler chain. The error
// middleware turns it into an envelope after the chain unwinds.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
