package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recurrence describes how often an income repeats.
type Recurrence string

const (
	RecurrenceOnce     Recurrence = "once"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}

	return false
}

// Status values of an income plan.
const (
	IncomePlanPlanned = "planned"
	IncomePlanMatched = "matched"
	IncomePlanMissed  = "missed"
)

// IncomePlan is an income the user expects at a specific date.
type IncomePlan struct {
	DefaultModel
	User                 User      `json:"-"`
	UserID               uuid.UUID `gorm:"index"`
	Label                string
	ExpectedDate         time.Time
	ExpectedAmount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Recurrence           Recurrence
	Status               string
	ActualAmount         decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Only set for matched plans
	MatchedTransactionID *string             // Reference to the transaction the income was matched with
}

func (p *IncomePlan) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*IncomePlan)
	if toSave.Status == "" {
		toSave.Status = IncomePlanPlanned
	}

	if toSave.Recurrence == "" {
		toSave.Recurrence = RecurrenceOnce
	}

	return tx.First(&User{}, toSave.UserID).Error
}

func (p *IncomePlan) BeforeSave(_ *gorm.DB) error {
	p.Label = strings.TrimSpace(p.Label)
	p.ExpectedDate = day(p.ExpectedDate)

	return nil
}

// BeforeUpdate normalizes label and date for partial updates.
func (p *IncomePlan) BeforeUpdate(tx *gorm.DB) error {
	var toSave IncomePlan
	switch dest := tx.Statement.Dest.(type) {
	case IncomePlan:
		toSave = dest
	case *IncomePlan:
		toSave = *dest
	default:
		return nil
	}

	if tx.Statement.Changed("Label") {
		tx.Statement.SetColumn("Label", strings.TrimSpace(toSave.Label))
	}

	if tx.Statement.Changed("ExpectedDate") {
		tx.Statement.SetColumn("ExpectedDate", day(toSave.ExpectedDate))
	}

	return nil
}

// day returns midnight UTC of the calendar day of t in its own location.
// Plans are only ever compared by day.
func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	year, month, d := t.Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (p *IncomePlan) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)
	p.ExpectedDate = p.ExpectedDate.In(time.UTC)

	return nil
}

func (p *IncomePlan) AfterSave(_ *gorm.DB) error {
	if p.ExpectedAmount.IsNegative() {
		return ErrIncomePlanAmountNegative
	}

	if !p.Recurrence.Valid() {
		return ErrIncomePlanRecurrenceInvalid
	}

	switch p.Status {
	case IncomePlanPlanned, IncomePlanMatched, IncomePlanMissed:
	default:
		return ErrIncomePlanStatusInvalid
	}

	return nil
}
