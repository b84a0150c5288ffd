package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/payplan/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	DefaultForecastMonths = 3
	MaxForecastMonths     = 24
)

// MonthSummary aggregates the allocations of all plans in a month.
//
// All totals are rounded to whole currency units.
type MonthSummary struct {
	Month          types.Month     `json:"month" example:"2024-07"`      // The month
	TotalIncome    decimal.Decimal `json:"totalIncome" example:"4200"`   // Sum of the amounts of all plans in the month
	TotalSavings   decimal.Decimal `json:"totalSavings" example:"840"`   // Allocated to savings
	TotalInvesting decimal.Decimal `json:"totalInvesting" example:"420"` // Allocated to investing
	TotalSpending  decimal.Decimal `json:"totalSpending" example:"2500"` // Allocated to spending
	TotalDebt      decimal.Decimal `json:"totalDebt" example:"300"`      // Allocated to debt
	PlanCount      int             `json:"planCount" example:"2"`        // Number of plans in the month
}

// MonthlyForecast returns one summary per month for the given number of
// months, starting with the current month.
//
// Allocations are computed from scratch with the current rule set for
// every plan. Lines with a category other than savings, investing,
// spending or debt are not part of any total.
func (s *Service) MonthlyForecast(ctx context.Context, userID uuid.UUID, months int) ([]MonthSummary, error) {
	if months == 0 {
		months = DefaultForecastMonths
	}

	if months < 0 || months > MaxForecastMonths {
		return nil, ErrInvalidMonths
	}

	start := types.MonthOf(s.clock.Now())

	rules, err := s.store.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}

	plans, err := s.store.Plans(ctx, userID, start, start.AddDate(0, months))
	if err != nil {
		return nil, err
	}

	summaries := make([]MonthSummary, 0, months)
	for i := range months {
		month := start.AddDate(0, i)

		summary := MonthSummary{
			Month:          month,
			TotalIncome:    decimal.Zero,
			TotalSavings:   decimal.Zero,
			TotalInvesting: decimal.Zero,
			TotalSpending:  decimal.Zero,
			TotalDebt:      decimal.Zero,
		}

		for _, plan := range plans {
			if !month.Contains(plan.ExpectedDate) {
				continue
			}

			amount := plan.Amount()
			summary.PlanCount++
			summary.TotalIncome = summary.TotalIncome.Add(amount)

			for _, line := range allocation.Allocate(amount, rules) {
				switch line.Category {
				case allocation.CategorySavings:
					summary.TotalSavings = summary.TotalSavings.Add(line.Amount)
				case allocation.CategoryInvesting:
					summary.TotalInvesting = summary.TotalInvesting.Add(line.Amount)
				case allocation.CategorySpending:
					summary.TotalSpending = summary.TotalSpending.Add(line.Amount)
				case allocation.CategoryDebt:
					summary.TotalDebt = summary.TotalDebt.Add(line.Amount)
				default:
					log.Debug().
						Str("plan", plan.ID.String()).
						Str("category", line.Category).
						Str("amount", line.Amount.String()).
						Msg("forecast line without bucket")
				}
			}
		}

		summary.TotalIncome = summary.TotalIncome.Round(0)
		summary.TotalSavings = summary.TotalSavings.Round(0)
		summary.TotalInvesting = summary.TotalInvesting.Round(0)
		summary.TotalSpending = summary.TotalSpending.Round(0)
		summary.TotalDebt = summary.TotalDebt.Round(0)

		summaries = append(summaries, summary)
	}

	forecastsTotal.Inc()
	return summaries, nil
}
