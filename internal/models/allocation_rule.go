package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationRule describes how a part of every income is routed to an account.
type AllocationRule struct {
	DefaultModel
	User      User      `json:"-"`
	UserID    uuid.UUID `gorm:"index"`
	Account   Account   `json:"-"`
	AccountID uuid.UUID
	Category  string
	Type      allocation.RuleType
	Value     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Percent (0-100) of the income or fixed amount
	Priority  int
	Active    bool
}

// Rule returns the representation of the rule used for computing allocations.
func (r AllocationRule) Rule() allocation.Rule {
	return allocation.Rule{
		ID:        r.ID,
		AccountID: r.AccountID,
		Category:  r.Category,
		Type:      r.Type,
		Value:     r.Value,
		Priority:  r.Priority,
		Active:    r.Active,
	}
}

func (r *AllocationRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*AllocationRule)
	return r.checkIntegrity(tx, toSave.UserID, toSave.AccountID)
}

func (r *AllocationRule) BeforeUpdate(tx *gorm.DB) error {
	var toSave AllocationRule
	switch dest := tx.Statement.Dest.(type) {
	case AllocationRule:
		toSave = dest
	case *AllocationRule:
		toSave = *dest
	default:
		return nil
	}

	// Hooks run on the model, the updated values need to be set on the statement
	if tx.Statement.Changed("Category") {
		tx.Statement.SetColumn("Category", normalizeCategory(toSave.Category))
	}

	if tx.Statement.Changed("AccountID") {
		return r.checkIntegrity(tx, r.UserID, toSave.AccountID)
	}

	return nil
}

// checkIntegrity verifies that the account exists and is owned by the user.
func (r *AllocationRule) checkIntegrity(tx *gorm.DB, userID, accountID uuid.UUID) error {
	var account Account
	err := tx.First(&account, accountID).Error
	if err != nil {
		return err
	}

	if account.UserID != userID {
		return ErrAllocationRuleAccountOwner
	}

	return nil
}

func (r *AllocationRule) BeforeSave(_ *gorm.DB) error {
	r.Category = normalizeCategory(r.Category)

	return nil
}

// AfterSave validates the values after the update has been applied
// to the model so that partial updates are validated, too.
func (r *AllocationRule) AfterSave(_ *gorm.DB) error {
	if !r.Type.Valid() {
		return ErrAllocationRuleTypeInvalid
	}

	if r.Value.IsNegative() {
		return ErrAllocationRuleValueNegative
	}

	if r.Type == allocation.RuleTypePercent && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		return ErrAllocationRulePercentTooHigh
	}

	return nil
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
