package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/payplan/backend/internal/models"
)

type UserEditable struct {
	Name     string `json:"name" example:"Alex" default:""`               // Name of the user
	Note     string `json:"note" example:"Paid twice a month" default:""` // A longer description of the user
	Locale   string `json:"locale" example:"de-DE" default:""`            // BCP 47 language tag of the user
	Currency string `json:"currency" example:"€" default:""`              // Currency symbol. Derived from the locale if not set
}

// model returns the database resource for the editable fields
func (editable UserEditable) model() models.User {
	return models.User{
		Name:     editable.Name,
		Note:     editable.Note,
		Locale:   editable.Locale,
		Currency: editable.Currency,
	}
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/0f8f8a9c-67cf-4a8f-9a7d-0a4a4bd0ff77"` // The user itself
}

// User is the API v1 representation of a User.
type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:     model.Name,
			Note:     model.Note,
			Locale:   model.Locale,
			Currency: model.Currency,
		},
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/users/%s", url, model.ID),
		},
	}
}

type UserCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []UserResponse `json:"data"`                                                          // List of created Users
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this user
}
