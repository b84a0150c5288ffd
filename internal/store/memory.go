package store

import (
	"cmp"
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/payplan/backend/internal/planner"
	"github.com/payplan/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Memory keeps all data in memory. It is used for tests.
//
// Transactions are serialized against each other and roll back all
// changes made through the transaction store when they fail.
type Memory struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	plans    map[uuid.UUID]planner.Plan
	rules    map[uuid.UUID][]allocation.Rule
	accounts map[uuid.UUID]map[uuid.UUID]string
	records  map[uuid.UUID][]planner.Record
}

var _ planner.Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		plans:    make(map[uuid.UUID]planner.Plan),
		rules:    make(map[uuid.UUID][]allocation.Rule),
		accounts: make(map[uuid.UUID]map[uuid.UUID]string),
		records:  make(map[uuid.UUID][]planner.Record),
	}
}

// AddPlan adds or replaces a plan.
func (m *Memory) AddPlan(plan planner.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plans[plan.ID] = plan
}

// AddRule appends a rule of the user. Rules are returned in the order
// they were added.
func (m *Memory) AddRule(userID uuid.UUID, rule allocation.Rule) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules[userID] = append(m.rules[userID], rule)
}

// AddAccount adds an account of the user.
func (m *Memory) AddAccount(userID, accountID uuid.UUID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accounts[userID] == nil {
		m.accounts[userID] = make(map[uuid.UUID]string)
	}
	m.accounts[userID][accountID] = name
}

func (m *Memory) Plan(_ context.Context, id uuid.UUID) (planner.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return planner.Plan{}, planner.ErrPlanNotFound
	}

	return plan, nil
}

func (m *Memory) Plans(_ context.Context, userID uuid.UUID, from, until types.Month) ([]planner.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plans := make([]planner.Plan, 0)
	for _, p := range m.plans {
		if p.UserID != userID {
			continue
		}

		if p.ExpectedDate.Before(from.Time()) || !p.ExpectedDate.Before(until.Time()) {
			continue
		}

		plans = append(plans, p)
	}

	slices.SortFunc(plans, func(a, b planner.Plan) int {
		if c := a.ExpectedDate.Compare(b.ExpectedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	return plans, nil
}

func (m *Memory) SavePlan(_ context.Context, plan planner.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[plan.ID]; !ok {
		return planner.ErrPlanNotFound
	}

	m.plans[plan.ID] = plan
	return nil
}

func (m *Memory) DeletePlan(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.plans, id)
	return nil
}

func (m *Memory) Rules(_ context.Context, userID uuid.UUID) ([]allocation.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.rules[userID]), nil
}

func (m *Memory) AccountNames(_ context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := maps.Clone(m.accounts[userID])
	if names == nil {
		names = make(map[uuid.UUID]string)
	}

	return names, nil
}

func (m *Memory) Records(_ context.Context, planID uuid.UUID) ([]planner.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := slices.Clone(m.records[planID])
	if records == nil {
		records = make([]planner.Record, 0)
	}

	return records, nil
}

func (m *Memory) ReplaceRecords(_ context.Context, plan planner.Plan, lines []allocation.Line, isForecast bool, createdAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]planner.Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, planner.Record{
			ID:           uuid.New(),
			UserID:       plan.UserID,
			IncomePlanID: plan.ID,
			AccountID:    line.AccountID,
			RuleID:       line.RuleID,
			Amount:       line.Amount,
			Category:     line.Category,
			IsForecast:   isForecast,
			CreatedAt:    createdAt,
		})
	}

	m.records[plan.ID] = records
	return nil
}

func (m *Memory) SetForecast(_ context.Context, planID uuid.UUID, isForecast bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records[planID] {
		m.records[planID][i].IsForecast = isForecast
	}

	return nil
}

func (m *Memory) DeleteRecords(_ context.Context, planID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, planID)
	return nil
}

func (m *Memory) WithTx(_ context.Context, fn func(planner.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snapshot := m.snapshot()

	err := fn(memoryTx{m})
	if err != nil {
		m.restore(snapshot)
	}

	return err
}

type memoryState struct {
	plans   map[uuid.UUID]planner.Plan
	rules   map[uuid.UUID][]allocation.Rule
	records map[uuid.UUID][]planner.Record
}

func (m *Memory) snapshot() memoryState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := memoryState{
		plans:   maps.Clone(m.plans),
		rules:   make(map[uuid.UUID][]allocation.Rule, len(m.rules)),
		records: make(map[uuid.UUID][]planner.Record, len(m.records)),
	}

	for k, v := range m.rules {
		state.rules[k] = slices.Clone(v)
	}

	for k, v := range m.records {
		state.records[k] = slices.Clone(v)
	}

	return state
}

func (m *Memory) restore(state memoryState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plans = state.plans
	m.rules = state.rules
	m.records = state.records
}

// memoryTx is the store handed to transaction functions.
// Nested transactions run in the enclosing one.
type memoryTx struct {
	*Memory
}

func (t memoryTx) WithTx(_ context.Context, fn func(planner.Store) error) error {
	return fn(t)
}
