package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Match marks a planned income as received.
//
// The allocation records of the plan become realized. Their amounts are
// not recomputed, run the allocations again to use the actual amount.
func (s *Service) Match(ctx context.Context, userID, planID uuid.UUID, actual decimal.Decimal, transactionID string) (Plan, error) {
	if actual.IsNegative() {
		return Plan{}, ErrInvalidAmount
	}

	return s.transition(ctx, userID, planID, StatusPlanned, StatusMatched,
		func(p *Plan) {
			p.ActualAmount = decimal.NewNullDecimal(actual)
			p.MatchedTransactionID = transactionID
		},
		func(tx Store, p Plan) error {
			return tx.SetForecast(ctx, p.ID, false)
		},
	)
}

// Unmatch reverts a matched plan to planned.
//
// The actual amount and the transaction reference are cleared and the
// allocation records become forecasts again.
func (s *Service) Unmatch(ctx context.Context, userID, planID uuid.UUID) (Plan, error) {
	return s.transition(ctx, userID, planID, StatusMatched, StatusPlanned,
		func(p *Plan) {
			p.ActualAmount = decimal.NullDecimal{}
			p.MatchedTransactionID = ""
		},
		func(tx Store, p Plan) error {
			return tx.SetForecast(ctx, p.ID, true)
		},
	)
}

// Miss marks a planned income as not received and deletes its allocation records.
func (s *Service) Miss(ctx context.Context, userID, planID uuid.UUID) (Plan, error) {
	return s.transition(ctx, userID, planID, StatusPlanned, StatusMissed,
		nil,
		func(tx Store, p Plan) error {
			return tx.DeleteRecords(ctx, p.ID)
		},
	)
}

// Reopen reverts a missed plan to planned. No allocation records are created.
func (s *Service) Reopen(ctx context.Context, userID, planID uuid.UUID) (Plan, error) {
	return s.transition(ctx, userID, planID, StatusMissed, StatusPlanned, nil, nil)
}

// DeletePlan deletes a plan together with all of its allocation records.
func (s *Service) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	unlock := s.lock(planID)
	defer unlock()

	return s.store.WithTx(ctx, func(tx Store) error {
		if _, err := loadPlan(ctx, tx, userID, planID); err != nil {
			return err
		}

		if err := tx.DeleteRecords(ctx, planID); err != nil {
			return err
		}

		return tx.DeletePlan(ctx, planID)
	})
}

// transition moves a plan from one status to another, applies the changes
// to the plan and updates the allocation records, all in one transaction.
func (s *Service) transition(ctx context.Context, userID, planID uuid.UUID, from, to Status, apply func(*Plan), records func(Store, Plan) error) (Plan, error) {
	unlock := s.lock(planID)
	defer unlock()

	var plan Plan
	err := s.store.WithTx(ctx, func(tx Store) error {
		p, err := loadPlan(ctx, tx, userID, planID)
		if err != nil {
			return err
		}

		if p.Status != from {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.Status, to)
		}

		p.Status = to
		if apply != nil {
			apply(&p)
		}

		if err := tx.SavePlan(ctx, p); err != nil {
			return err
		}

		if records != nil {
			if err := records(tx, p); err != nil {
				return err
			}
		}

		plan = p
		return nil
	})
	if err != nil {
		return Plan{}, err
	}

	transitionsTotal.WithLabelValues(string(to)).Inc()
	log.Debug().Str("plan", planID.String()).Str("from", string(from)).Str("to", string(to)).Msg("income plan status changed")

	return plan, nil
}
