package handler

import (
	"errors"
	"log"
	"net/http"

	"angaza/internal/service"
	"angaza/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service sentinel errors to HTTP statuses. Unrecognized
// errors are infrastructure failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicate),
		errors.Is(err, service.ErrInUse),
		errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Infrastructure failures are logged
// with detail server-side and surfaced with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = "internal server error"
	}
	c.JSON(status, response.Error(status, msg))
}
