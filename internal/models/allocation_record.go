package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationRecord is a persisted allocation line of an income plan.
//
// Records of matched plans are realized, all others are forecasts.
// RuleID and AccountID are kept as plain references so that rules and
// accounts can be changed without touching the history.
type AllocationRecord struct {
	DefaultModel
	User         User       `json:"-"`
	UserID       uuid.UUID  `gorm:"index"`
	IncomePlan   IncomePlan `json:"-"`
	IncomePlanID uuid.UUID  `gorm:"index"`
	AccountID    uuid.UUID
	RuleID       uuid.UUID
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category     string
	IsForecast   bool
}

// BeforeUpdate rejects amount changes on realized records.
func (r *AllocationRecord) BeforeUpdate(tx *gorm.DB) error {
	if !r.IsForecast && tx.Statement.Changed("Amount") {
		return ErrAllocationRecordRealized
	}

	return nil
}

func (r *AllocationRecord) AfterSave(_ *gorm.DB) error {
	if r.Amount.IsNegative() {
		return ErrAllocationRecordAmountNegative
	}

	return nil
}
