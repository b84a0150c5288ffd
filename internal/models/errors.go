package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrResourceInUse    = errors.New("the resource is still referenced by other resources and cannot be deleted")
)

// User errors
var (
	ErrUserLocaleInvalid = errors.New("the locale is not a valid BCP 47 language tag")
)

// Account errors
var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique for the user")
)

// Allocation rule errors
var (
	ErrAllocationRuleTypeInvalid    = errors.New("the rule type must be one of 'percent' or 'fixed'")
	ErrAllocationRuleValueNegative  = errors.New("the rule value must not be negative")
	ErrAllocationRulePercentTooHigh = errors.New("percent rules must not have a value above 100")
	ErrAllocationRuleAccountOwner   = errors.New("the account of a rule must belong to the same user as the rule")
)

// Income plan errors
var (
	ErrIncomePlanAmountNegative    = errors.New("the expected amount must not be negative")
	ErrIncomePlanRecurrenceInvalid = errors.New("the recurrence must be one of 'once', 'weekly', 'biweekly' or 'monthly'")
	ErrIncomePlanStatusInvalid     = errors.New("the status must be one of 'planned', 'matched' or 'missed'")
)

// Allocation record errors
var (
	ErrAllocationRecordRealized       = errors.New("the amount of a realized allocation record cannot be changed")
	ErrAllocationRecordAmountNegative = errors.New("the amount of an allocation record must not be negative")
)
