package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/models"
)

type owned interface {
	models.Account | models.AllocationRule | models.IncomePlan | models.AllocationRecord
}

// ownedResource returns the resource identified by the URI if it belongs
// to the user the request is made for.
func ownedResource[R owned](c *gin.Context) (R, error) {
	var resource R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	id, err := userID(c)
	if err != nil {
		return resource, err
	}

	err = models.DB.Where("user_id = ?", id).First(&resource, uri.ID.UUID).Error
	return resource, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R owned](c *gin.Context, options gin.HandlerFunc) {
	_, err := ownedResource[R](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}
