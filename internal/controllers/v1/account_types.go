package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
)

type AccountEditable struct {
	Name     string `json:"name" example:"Emergency Fund" default:""`           // Name of the account
	Note     string `json:"note" example:"Three months of expenses" default:""` // A longer description for the account
	Archived bool   `json:"archived" example:"true" default:"false"`            // Is the account archived?
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:   userID,
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type AccountLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`       // The account itself
	Rules string `json:"rules" example:"https://example.com/api/v1/rules?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Rules routing money to this account
}

// Account is the API v1 representation of an Account.
type Account struct {
	models.DefaultModel
	AccountEditable
	UserID uuid.UUID    `json:"userId" example:"0f8f8a9c-67cf-4a8f-9a7d-0a4a4bd0ff77"` // ID of the user owning the account
	Links  AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:     model.Name,
			Note:     model.Note,
			Archived: model.Archived,
		},
		UserID: model.UserID,
		Links: AccountLinks{
			Self:  fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Rules: fmt.Sprintf("%s/v1/rules?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created Accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the account name
	Note     string `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Archived bool   `form:"archived"`                   // Is the account archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Archived: f.Archived,
	}
}
