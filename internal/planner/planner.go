// Package planner runs the allocation waterfall for income plans.
//
// It executes and persists allocations for a plan, previews allocations
// for hypothetical amounts, forecasts upcoming months and drives the
// lifecycle of income plans. All persistence goes through the Store port.
package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the current system time in UTC.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().In(time.UTC)
})

// Service is the entry point for all planner operations.
type Service struct {
	store Store
	clock Clock

	mu    sync.Mutex
	locks map[uuid.UUID]*planLock
}

type planLock struct {
	sync.Mutex
	refs int
}

// New returns a Service using store for persistence.
// If clock is nil, SystemClock is used.
func New(store Store, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock
	}

	return &Service{
		store: store,
		clock: clock,
		locks: make(map[uuid.UUID]*planLock),
	}
}

// lock serializes all writing operations on a single plan.
// The returned function releases the lock.
func (s *Service) lock(planID uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[planID]
	if !ok {
		l = &planLock{}
		s.locks[planID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, planID)
		}
		s.mu.Unlock()
	}
}

// loadPlan returns the plan if it exists and belongs to the user.
func loadPlan(ctx context.Context, store Store, userID, planID uuid.UUID) (Plan, error) {
	plan, err := store.Plan(ctx, planID)
	if errors.Is(err, ErrPlanNotFound) {
		return Plan{}, ErrPlanNotFound
	}

	if err != nil {
		return Plan{}, err
	}

	if plan.UserID != userID {
		return Plan{}, ErrPlanNotFound
	}

	return plan, nil
}

// Plan returns a single plan of the user.
func (s *Service) Plan(ctx context.Context, userID, planID uuid.UUID) (Plan, error) {
	return loadPlan(ctx, s.store, userID, planID)
}

// Records returns the persisted allocation records of a plan.
func (s *Service) Records(ctx context.Context, userID, planID uuid.UUID) ([]Record, error) {
	if _, err := loadPlan(ctx, s.store, userID, planID); err != nil {
		return nil, err
	}

	return s.store.Records(ctx, planID)
}
