package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
	"github.com/shopspring/decimal"
)

type IncomePlanEditable struct {
	Label          string            `json:"label" example:"Salary" default:""`                  // Label of the income
	ExpectedDate   time.Time         `json:"expectedDate" example:"2024-07-25T00:00:00Z"`        // Date the income is expected at. Only the day is stored
	ExpectedAmount decimal.Decimal   `json:"expectedAmount" example:"2500" swaggertype:"string"` // The amount that is expected
	Recurrence     models.Recurrence `json:"recurrence" example:"monthly" default:"once"`        // One of once, weekly, biweekly or monthly
}

// model returns the database resource for the editable fields
func (editable IncomePlanEditable) model(userID uuid.UUID) models.IncomePlan {
	return models.IncomePlan{
		UserID:         userID,
		Label:          editable.Label,
		ExpectedDate:   editable.ExpectedDate,
		ExpectedAmount: editable.ExpectedAmount,
		Recurrence:     editable.Recurrence,
	}
}

type IncomePlanLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6"`                    // The income plan itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6/allocations"` // Allocations of the income plan
	Match       string `json:"match" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6/match"`             // Match the income plan with a transaction
	Unmatch     string `json:"unmatch" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6/unmatch"`         // Undo a match
	Miss        string `json:"miss" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6/miss"`               // Mark the income as missed
	Reopen      string `json:"reopen" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6/reopen"`           // Reopen a missed income
}

// IncomePlan is the API v1 representation of an IncomePlan.
type IncomePlan struct {
	models.DefaultModel
	IncomePlanEditable
	UserID               uuid.UUID           `json:"userId" example:"0f8f8a9c-67cf-4a8f-9a7d-0a4a4bd0ff77"`               // ID of the user owning the plan
	Status               string              `json:"status" example:"planned"`                                            // One of planned, matched or missed
	ActualAmount         decimal.NullDecimal `json:"actualAmount" example:"2512.5" swaggertype:"string"`                  // The amount actually received. Only set for matched plans
	MatchedTransactionID *string             `json:"matchedTransactionId" example:"c7a5e4d0-4a55-4e0b-8d4e-6a3f2b1c0d9e"` // The transaction the plan was matched with
	Links                IncomePlanLinks     `json:"links"`
}

func newIncomePlan(c *gin.Context, model models.IncomePlan) IncomePlan {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/income-plans/%s", url, model.ID)

	return IncomePlan{
		DefaultModel: model.DefaultModel,
		IncomePlanEditable: IncomePlanEditable{
			Label:          model.Label,
			ExpectedDate:   model.ExpectedDate,
			ExpectedAmount: model.ExpectedAmount,
			Recurrence:     model.Recurrence,
		},
		UserID:               model.UserID,
		Status:               model.Status,
		ActualAmount:         model.ActualAmount,
		MatchedTransactionID: model.MatchedTransactionID,
		Links: IncomePlanLinks{
			Self:        self,
			Allocations: self + "/allocations",
			Match:       self + "/match",
			Unmatch:     self + "/unmatch",
			Miss:        self + "/miss",
			Reopen:      self + "/reopen",
		},
	}
}

type IncomePlanListResponse struct {
	Data       []IncomePlan `json:"data"`                                                          // List of income plans
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type IncomePlanCreateResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []IncomePlanResponse `json:"data"`                                                          // List of created Income Plans
}

func (i *IncomePlanCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	i.Data = append(i.Data, IncomePlanResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomePlanResponse struct {
	Data  *IncomePlan `json:"data"`                                                          // Data for the income plan
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this income plan
}

// IncomePlanMatch is the body for matching an income plan with a transaction.
type IncomePlanMatch struct {
	ActualAmount  *decimal.Decimal `json:"actualAmount" binding:"required" example:"2512.5" swaggertype:"string"` // The amount actually received
	TransactionID string           `json:"transactionId" example:"c7a5e4d0-4a55-4e0b-8d4e-6a3f2b1c0d9e"`          // Reference to the transaction
}

type IncomePlanQueryFilter struct {
	Label      string    `form:"label" filterField:"false"`                                    // Glob pattern for the label
	Status     string    `form:"status"`                                                       // By status
	Recurrence string    `form:"recurrence"`                                                   // By recurrence
	From       time.Time `form:"from" time_format:"2006-01" time_utc:"1" filterField:"false"`  // First month, inclusive
	Until      time.Time `form:"until" time_format:"2006-01" time_utc:"1" filterField:"false"` // Last month, inclusive
	Offset     uint      `form:"offset" filterField:"false"`                                   // The offset of the first Income Plan returned. Defaults to 0.
	Limit      int       `form:"limit" filterField:"false"`                                    // Maximum number of Income Plans to return. Defaults to 50.
}

func (f IncomePlanQueryFilter) model() models.IncomePlan {
	return models.IncomePlan{
		Status:     f.Status,
		Recurrence: models.Recurrence(f.Recurrence),
	}
}
