package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
	"github.com/shopspring/decimal"
)

type AllocationRecordEditable struct {
	Amount decimal.Decimal `json:"amount" example:"250" swaggertype:"string"` // Allocated amount. Can only be changed while the record is a forecast
}

type AllocationRecordLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/allocations/d1c6e7a2-96c9-4a0b-9e4c-0fd4c4f1a2b3"`        // The record itself
	IncomePlan string `json:"incomePlan" example:"https://example.com/api/v1/income-plans/5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6"` // The income plan the record belongs to
	Account    string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`        // The account the money is routed to
}

// AllocationRecord is the API v1 representation of an AllocationRecord.
type AllocationRecord struct {
	ID        uuid.UUID `json:"id" example:"d1c6e7a2-96c9-4a0b-9e4c-0fd4c4f1a2b3"` // UUID for the resource
	CreatedAt time.Time `json:"createdAt" example:"2024-07-10T09:30:00Z"`          // Time the allocation was computed
	AllocationRecordEditable
	UserID       uuid.UUID             `json:"userId" example:"0f8f8a9c-67cf-4a8f-9a7d-0a4a4bd0ff77"`       // ID of the user owning the record
	IncomePlanID uuid.UUID             `json:"incomePlanId" example:"5b0e8f44-1fd5-4b53-a5a3-49b1a3e0e5d6"` // ID of the income plan
	AccountID    uuid.UUID             `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // ID of the destination account
	RuleID       uuid.UUID             `json:"ruleId" example:"1d2f9a2c-6b79-4d0e-8a7d-6c5d0c1f3e44"`       // ID of the rule that produced the record
	Category     string                `json:"category" example:"savings"`                                  // Category of the rule at the time of allocation
	IsForecast   bool                  `json:"isForecast" example:"true"`                                   // Records of income that was not matched yet are forecasts
	Links        AllocationRecordLinks `json:"links"`
}

func newAllocationRecord(c *gin.Context, record planner.Record) AllocationRecord {
	url := c.GetString(string(models.DBContextURL))

	return AllocationRecord{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		AllocationRecordEditable: AllocationRecordEditable{
			Amount: record.Amount,
		},
		UserID:       record.UserID,
		IncomePlanID: record.IncomePlanID,
		AccountID:    record.AccountID,
		RuleID:       record.RuleID,
		Category:     record.Category,
		IsForecast:   record.IsForecast,
		Links: AllocationRecordLinks{
			Self:       fmt.Sprintf("%s/v1/allocations/%s", url, record.ID),
			IncomePlan: fmt.Sprintf("%s/v1/income-plans/%s", url, record.IncomePlanID),
			Account:    fmt.Sprintf("%s/v1/accounts/%s", url, record.AccountID),
		},
	}
}

// recordOf returns the planner representation of a record model.
func recordOf(model models.AllocationRecord) planner.Record {
	return planner.Record{
		ID:           model.ID,
		UserID:       model.UserID,
		IncomePlanID: model.IncomePlanID,
		AccountID:    model.AccountID,
		RuleID:       model.RuleID,
		Amount:       model.Amount,
		Category:     model.Category,
		IsForecast:   model.IsForecast,
		CreatedAt:    model.CreatedAt,
	}
}

type AllocationRecordListResponse struct {
	Data  []AllocationRecord `json:"data"`                                                          // List of allocation records
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationRecordResponse struct {
	Data  *AllocationRecord `json:"data"`                                                          // Data for the allocation record
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// PreviewRequest is the body for an allocation preview.
type PreviewRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required" example:"2500" swaggertype:"string"` // The hypothetical income
}

type PreviewResponse struct {
	Data  *planner.Preview `json:"data"`                                            // The allocations of the amount
	Error *string          `json:"error" example:"the amount must not be negative"` // The error, if any occurred
}
