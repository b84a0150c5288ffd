package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/payplan/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an income plan.
type Status string

const (
	StatusPlanned Status = "planned" // Income is expected but not yet seen
	StatusMatched Status = "matched" // Income was matched to an actual transaction
	StatusMissed  Status = "missed"  // Income did not arrive
)

// Valid reports if the status is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPlanned || s == StatusMatched || s == StatusMissed
}

// Plan is a planned or realized income event.
type Plan struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Label                string
	ExpectedDate         time.Time
	ExpectedAmount       decimal.Decimal
	Status               Status
	ActualAmount         decimal.NullDecimal
	MatchedTransactionID string
}

// Amount returns the amount allocations are computed from.
//
// This is the actual amount for matched plans that have one and the
// expected amount in every other case.
func (p Plan) Amount() decimal.Decimal {
	if p.Status == StatusMatched && p.ActualAmount.Valid {
		return p.ActualAmount.Decimal
	}

	return p.ExpectedAmount
}

// IsForecast reports if allocations for this plan are forecasts.
func (p Plan) IsForecast() bool {
	return p.Status != StatusMatched
}

// Record is a persisted allocation line of an income plan.
type Record struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	IncomePlanID uuid.UUID
	AccountID    uuid.UUID
	RuleID       uuid.UUID
	Amount       decimal.Decimal
	Category     string
	IsForecast   bool
	CreatedAt    time.Time
}

// Store is the persistence port of the planner.
//
// Implementations must return ErrPlanNotFound from Plan when the plan
// does not exist.
type Store interface {
	// Plan returns a single income plan.
	Plan(ctx context.Context, id uuid.UUID) (Plan, error)

	// Plans returns all plans of the user with an expected date in [from, until).
	Plans(ctx context.Context, userID uuid.UUID, from, until types.Month) ([]Plan, error)

	// SavePlan persists status, actual amount and matched transaction of the plan.
	SavePlan(ctx context.Context, plan Plan) error

	// DeletePlan removes the plan.
	DeletePlan(ctx context.Context, id uuid.UUID) error

	// Rules returns all rules of the user, active or not, in storage order.
	Rules(ctx context.Context, userID uuid.UUID) ([]allocation.Rule, error)

	// AccountNames maps the IDs of the user's accounts to their names.
	AccountNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error)

	// Records returns the allocation records of a plan.
	Records(ctx context.Context, planID uuid.UUID) ([]Record, error)

	// ReplaceRecords deletes all records of the plan and creates one
	// record per line. Both steps must be atomic.
	ReplaceRecords(ctx context.Context, plan Plan, lines []allocation.Line, isForecast bool, createdAt time.Time) error

	// SetForecast sets the forecast flag on all records of the plan.
	SetForecast(ctx context.Context, planID uuid.UUID, isForecast bool) error

	// DeleteRecords deletes all records of the plan.
	DeleteRecords(ctx context.Context, planID uuid.UUID) error

	// WithTx executes fn within a transaction.
	// If fn returns an error, all of its writes are rolled back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
