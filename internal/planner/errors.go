package planner

import "errors"

var (
	// ErrPlanNotFound is returned for plans that do not exist and for plans
	// owned by a different user.
	ErrPlanNotFound = errors.New("there is no income plan matching your query")

	ErrInvalidTransition = errors.New("the income plan cannot change to the requested status")
	ErrInvalidAmount     = errors.New("the amount must not be negative")
	ErrInvalidMonths     = errors.New("the number of forecast months must be between 1 and 24")
)
