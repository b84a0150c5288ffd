// Package allocation distributes an income amount over an ordered set of
// allocation rules.
//
// The distribution is a waterfall: active rules are processed in ascending
// priority, each one claims either a percentage of the full income or a
// fixed amount, and every claim is clamped to what is still left. A trailing
// 100 % rule takes whatever remains.
//
// Everything in this package is pure. Callers load rules and persist results.
package allocation

import (
	"cmp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RuleType determines how the amount of a rule is computed.
type RuleType string

const (
	RuleTypePercent RuleType = "percent" // Value is a percentage of the income
	RuleTypeFixed   RuleType = "fixed"   // Value is an absolute amount
)

// Valid reports if the rule type is one of the known types.
func (t RuleType) Valid() bool {
	return t == RuleTypePercent || t == RuleTypeFixed
}

// Categories that are aggregated in forecasts. Rules may use any other
// category string.
const (
	CategorySavings   = "savings"
	CategoryInvesting = "investing"
	CategorySpending  = "spending"
	CategoryDebt      = "debt"
	CategoryOther     = "other"
)

var hundred = decimal.NewFromInt(100)

// Rule is a point-in-time snapshot of an allocation rule.
type Rule struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Category  string
	Type      RuleType
	Value     decimal.Decimal
	Priority  int
	Active    bool
}

// Line is the share of the income assigned to a single rule.
type Line struct {
	RuleID    uuid.UUID       `json:"ruleId" example:"1d2f9a2c-6b79-4d0e-8a7d-6c5d0c1f3e44"`    // The rule that produced this line
	AccountID uuid.UUID       `json:"accountId" example:"8b0b3c2a-52c7-4f4e-a1ad-3b9e7c9a8e05"` // Destination account
	Category  string          `json:"category" example:"savings"`                               // Category of the rule
	Amount    decimal.Decimal `json:"amount" example:"333.3"`                                   // Allocated amount
}

// Ordered returns the active rules sorted by ascending priority.
//
// Rules with equal priority keep their relative order.
func Ordered(rules []Rule) []Rule {
	active := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Active {
			active = append(active, rule)
		}
	}

	slices.SortStableFunc(active, func(a, b Rule) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	return active
}

// Allocate distributes income over the rules.
//
// The returned lines are in processing order, one per active rule. Lines are
// emitted even when nothing is left to allocate. An empty rule set yields an
// empty slice.
func Allocate(income decimal.Decimal, rules []Rule) []Line {
	ordered := Ordered(rules)
	lines := make([]Line, 0, len(ordered))

	remaining := income
	for i, rule := range ordered {
		available := decimal.Max(decimal.Zero, remaining)

		amount := rule.Value
		if rule.Type == RuleTypePercent {
			// Percentages always refer to the full income, not the remainder
			amount = income.Mul(rule.Value).Div(hundred).Round(2)
		}

		// A trailing 100 % rule collects the remainder
		if i == len(ordered)-1 && rule.Type == RuleTypePercent && rule.Value.Equal(hundred) {
			amount = available
		}

		amount = decimal.Min(amount, available)

		lines = append(lines, Line{
			RuleID:    rule.ID,
			AccountID: rule.AccountID,
			Category:  rule.Category,
			Amount:    amount,
		})

		remaining = remaining.Sub(amount)
	}

	return lines
}

// Total returns the sum of all line amounts.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}

	return total
}

// Unallocated returns the part of amount that the lines do not cover,
// rounded to cents and never negative.
func Unallocated(amount decimal.Decimal, lines []Line) decimal.Decimal {
	return decimal.Max(decimal.Zero, amount.Sub(Total(lines)).Round(2))
}
