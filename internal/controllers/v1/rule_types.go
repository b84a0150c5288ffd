package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/payplan/backend/internal/httputil"
	"github.com/payplan/backend/internal/models"
	"github.com/shopspring/decimal"
)

type RuleEditable struct {
	AccountID uuid.UUID           `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account the money is routed to
	Category  string              `json:"category" example:"savings" default:""`                    // Category of the rule. One of savings, investing, spending, debt or other
	Type      allocation.RuleType `json:"type" example:"percent"`                                   // Type of the rule. One of percent or fixed
	Value     decimal.Decimal     `json:"value" example:"20" swaggertype:"string"`                  // Percent of the income for percent rules, amount for fixed rules
	Priority  int                 `json:"priority" example:"1" default:"0"`                         // Rules are applied in ascending order of priority
	Active    *bool               `json:"active" example:"true" default:"true"`                     // Inactive rules are ignored
}

// model returns the database resource for the editable fields
func (editable RuleEditable) model(userID uuid.UUID) models.AllocationRule {
	return models.AllocationRule{
		UserID:    userID,
		AccountID: editable.AccountID,
		Category:  editable.Category,
		Type:      editable.Type,
		Value:     editable.Value,
		Priority:  editable.Priority,
		Active:    editable.Active == nil || *editable.Active,
	}
}

type RuleLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/rules/1d2f9a2c-6b79-4d0e-8a7d-6c5d0c1f3e44"`       // The rule itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The account the money is routed to
}

// Rule is the API v1 representation of an AllocationRule.
type Rule struct {
	models.DefaultModel
	RuleEditable
	UserID uuid.UUID `json:"userId" example:"0f8f8a9c-67cf-4a8f-9a7d-0a4a4bd0ff77"` // ID of the user owning the rule
	Links  RuleLinks `json:"links"`
}

func newRule(c *gin.Context, model models.AllocationRule) Rule {
	url := c.GetString(string(models.DBContextURL))
	active := model.Active

	return Rule{
		DefaultModel: model.DefaultModel,
		RuleEditable: RuleEditable{
			AccountID: model.AccountID,
			Category:  model.Category,
			Type:      model.Type,
			Value:     model.Value,
			Priority:  model.Priority,
			Active:    &active,
		},
		UserID: model.UserID,
		Links: RuleLinks{
			Self:    fmt.Sprintf("%s/v1/rules/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type RuleListResponse struct {
	Data       []Rule      `json:"data"`                                                          // List of rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RuleCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RuleResponse `json:"data"`                                                          // List of created Rules
}

func (r *RuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RuleResponse struct {
	Data  *Rule   `json:"data"`                                                          // Data for the rule
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this rule
}

type RuleQueryFilter struct {
	AccountID string `form:"account" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // By ID of the account
	Category  string `form:"category"`                                               // By category
	Type      string `form:"type"`                                                   // By type
	Active    bool   `form:"active"`                                                 // Is the rule active?
	Offset    uint   `form:"offset" filterField:"false"`                             // The offset of the first Rule returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`                              // Maximum number of Rules to return. Defaults to 50.
}

func (f RuleQueryFilter) model() (models.AllocationRule, error) {
	accountID, err := httputil.UUIDFromString(f.AccountID)
	if err != nil {
		return models.AllocationRule{}, err
	}

	return models.AllocationRule{
		AccountID: accountID,
		Category:  strings.ToLower(strings.TrimSpace(f.Category)),
		Type:      allocation.RuleType(f.Type),
		Active:    f.Active,
	}, nil
}
