package v1

import (
	"errors"
	"net/http"

	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, planner.ErrPlanNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errUserIDMissing = errors.New("the X-User-ID header must be set")
