package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// UnknownAccount is displayed for accounts whose name cannot be resolved.
const UnknownAccount = "Unknown"

// PreviewLine is an allocation line enriched for display.
type PreviewLine struct {
	allocation.Line
	AccountName string              `json:"accountName" example:"Emergency Fund"` // Name of the destination account
	RuleType    allocation.RuleType `json:"ruleType" example:"percent"`           // Type of the rule that produced the line
	RuleValue   decimal.Decimal     `json:"ruleValue" example:"20"`               // Value of the rule that produced the line
}

// Preview is the result of a hypothetical allocation.
type Preview struct {
	Allocations []PreviewLine   `json:"allocations"`                 // Allocation lines in processing order
	Unallocated decimal.Decimal `json:"unallocated" example:"127.5"` // Part of the amount not covered by any rule
}

// Preview computes the allocations for a hypothetical amount without
// persisting anything.
//
// The numbers are identical to what RunAllocations would persist for a
// plan with this amount.
func (s *Service) Preview(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (Preview, error) {
	if amount.IsNegative() {
		return Preview{}, ErrInvalidAmount
	}

	rules, err := s.store.Rules(ctx, userID)
	if err != nil {
		return Preview{}, err
	}

	names, err := s.store.AccountNames(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user", userID.String()).Msg("account names unavailable for preview")
		names = map[uuid.UUID]string{}
	}

	byID := make(map[uuid.UUID]allocation.Rule, len(rules))
	for _, rule := range rules {
		byID[rule.ID] = rule
	}

	lines := allocation.Allocate(amount, rules)
	preview := Preview{
		Allocations: make([]PreviewLine, 0, len(lines)),
		Unallocated: allocation.Unallocated(amount, lines),
	}

	for _, line := range lines {
		name, ok := names[line.AccountID]
		if !ok {
			name = UnknownAccount
		}

		rule := byID[line.RuleID]
		preview.Allocations = append(preview.Allocations, PreviewLine{
			Line:        line,
			AccountName: name,
			RuleType:    rule.Type,
			RuleValue:   rule.Value,
		})
	}

	previewsTotal.Inc()
	return preview, nil
}
