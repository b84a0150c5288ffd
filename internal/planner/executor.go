package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/rs/zerolog/log"
)

// RunAllocations computes the allocations for an income plan and replaces
// all allocation records of the plan with the result.
//
// The plan's actual amount is used when it is matched, the expected amount
// otherwise. Records are flagged as forecasts unless the plan is matched.
// Running twice with unchanged plan and rules recreates the same records.
func (s *Service) RunAllocations(ctx context.Context, userID, planID uuid.UUID) ([]allocation.Line, error) {
	unlock := s.lock(planID)
	defer unlock()

	var lines []allocation.Line
	err := s.store.WithTx(ctx, func(tx Store) error {
		plan, err := loadPlan(ctx, tx, userID, planID)
		if err != nil {
			return err
		}

		rules, err := tx.Rules(ctx, userID)
		if err != nil {
			return err
		}

		lines = allocation.Allocate(plan.Amount(), rules)
		return tx.ReplaceRecords(ctx, plan, lines, plan.IsForecast(), s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	runsTotal.Inc()
	log.Debug().
		Str("plan", planID.String()).
		Int("lines", len(lines)).
		Str("allocated", allocation.Total(lines).String()).
		Msg("allocations replaced")

	return lines, nil
}
