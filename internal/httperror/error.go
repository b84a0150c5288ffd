// Package httperror renders errors that are not produced by an API
// handler, e.g. for methods that are not allowed on an endpoint.
package httperror

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Message string `json:"error" example:"this HTTP method is not allowed for the endpoint you called"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

// Respond writes the formatted message as error with the status.
func Respond(c *gin.Context, status int, format string, args ...any) {
	c.JSON(status, Error{
		Message: fmt.Sprintf(format, args...),
	})
}
