// Package v1 implements the v1 HTTP API.
//
// All resources except users are owned by a user. The user is identified
// by the X-User-ID header, resources of other users are reported as not found.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
)

// HeaderUserID identifies the user a request is made for.
const HeaderUserID = "X-User-ID"

// Controller serves the v1 API.
type Controller struct {
	Planner *planner.Service
}

// userID returns the ID of the user the request is made for.
func userID(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader(HeaderUserID)
	if header == "" {
		return uuid.Nil, errUserIDMissing
	}

	id, err := httputil.UUIDFromString(header)
	if err != nil {
		return uuid.Nil, err
	}

	err = models.DB.First(&models.User{}, id).Error
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
