// Package store contains the implementations of the planner's storage port.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
	"github.com/payplan/backend/internal/types"
	"gorm.io/gorm"
)

// Gorm stores planner data in the database through the models package.
type Gorm struct {
	db *gorm.DB
}

var _ planner.Store = (*Gorm)(nil)

// NewGorm returns a store using db.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func newPlan(model models.IncomePlan) planner.Plan {
	plan := planner.Plan{
		ID:             model.ID,
		UserID:         model.UserID,
		Label:          model.Label,
		ExpectedDate:   model.ExpectedDate,
		ExpectedAmount: model.ExpectedAmount,
		Status:         planner.Status(model.Status),
		ActualAmount:   model.ActualAmount,
	}

	if model.MatchedTransactionID != nil {
		plan.MatchedTransactionID = *model.MatchedTransactionID
	}

	return plan
}

func newRecord(model models.AllocationRecord) planner.Record {
	return planner.Record{
		ID:           model.ID,
		UserID:       model.UserID,
		IncomePlanID: model.IncomePlanID,
		AccountID:    model.AccountID,
		RuleID:       model.RuleID,
		Amount:       model.Amount,
		Category:     model.Category,
		IsForecast:   model.IsForecast,
		CreatedAt:    model.CreatedAt,
	}
}

func notFound(err error) bool {
	return errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *Gorm) Plan(ctx context.Context, id uuid.UUID) (planner.Plan, error) {
	var model models.IncomePlan
	err := s.db.WithContext(ctx).First(&model, id).Error
	if notFound(err) {
		return planner.Plan{}, planner.ErrPlanNotFound
	}

	if err != nil {
		return planner.Plan{}, err
	}

	return newPlan(model), nil
}

func (s *Gorm) Plans(ctx context.Context, userID uuid.UUID, from, until types.Month) ([]planner.Plan, error) {
	var plans []models.IncomePlan
	err := s.db.WithContext(ctx).
		Where("income_plans.user_id = ?", userID).
		Where("date(income_plans.expected_date) >= date(?)", from.Time()).
		Where("date(income_plans.expected_date) < date(?)", until.Time()).
		Order("date(income_plans.expected_date) ASC, income_plans.created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	result := make([]planner.Plan, 0, len(plans))
	for _, p := range plans {
		result = append(result, newPlan(p))
	}

	return result, nil
}

func (s *Gorm) SavePlan(ctx context.Context, plan planner.Plan) error {
	db := s.db.WithContext(ctx)

	var model models.IncomePlan
	err := db.First(&model, plan.ID).Error
	if notFound(err) {
		return planner.ErrPlanNotFound
	}

	if err != nil {
		return err
	}

	var transactionID *string
	if plan.MatchedTransactionID != "" {
		transactionID = &plan.MatchedTransactionID
	}

	return db.
		Model(&model).
		Select("Status", "ActualAmount", "MatchedTransactionID").
		Updates(models.IncomePlan{
			Status:               string(plan.Status),
			ActualAmount:         plan.ActualAmount,
			MatchedTransactionID: transactionID,
		}).Error
}

func (s *Gorm) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.IncomePlan{DefaultModel: models.DefaultModel{ID: id}}).Error
}

func (s *Gorm) Rules(ctx context.Context, userID uuid.UUID) ([]allocation.Rule, error) {
	var rules []models.AllocationRule
	err := s.db.WithContext(ctx).
		Where("allocation_rules.user_id = ?", userID).
		Order("allocation_rules.created_at ASC, allocation_rules.rowid ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	result := make([]allocation.Rule, 0, len(rules))
	for _, r := range rules {
		result = append(result, r.Rule())
	}

	return result, nil
}

func (s *Gorm) AccountNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).Where("accounts.user_id = ?", userID).Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	return names, nil
}

func (s *Gorm) Records(ctx context.Context, planID uuid.UUID) ([]planner.Record, error) {
	var records []models.AllocationRecord
	err := s.db.WithContext(ctx).
		Where("allocation_records.income_plan_id = ?", planID).
		Order("allocation_records.created_at ASC, allocation_records.rowid ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	result := make([]planner.Record, 0, len(records))
	for _, r := range records {
		result = append(result, newRecord(r))
	}

	return result, nil
}

func (s *Gorm) ReplaceRecords(ctx context.Context, plan planner.Plan, lines []allocation.Line, isForecast bool, createdAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := deleteRecords(tx, plan.ID)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			return nil
		}

		records := make([]models.AllocationRecord, 0, len(lines))
		for _, line := range lines {
			records = append(records, models.AllocationRecord{
				DefaultModel: models.DefaultModel{
					Timestamps: models.Timestamps{
						CreatedAt: createdAt,
						UpdatedAt: createdAt,
					},
				},
				UserID:       plan.UserID,
				IncomePlanID: plan.ID,
				AccountID:    line.AccountID,
				RuleID:       line.RuleID,
				Amount:       line.Amount,
				Category:     line.Category,
				IsForecast:   isForecast,
			})
		}

		return tx.Create(&records).Error
	})
}

func (s *Gorm) SetForecast(ctx context.Context, planID uuid.UUID, isForecast bool) error {
	return s.db.WithContext(ctx).
		Model(&models.AllocationRecord{}).
		Where("allocation_records.income_plan_id = ?", planID).
		Update("is_forecast", isForecast).Error
}

func (s *Gorm) DeleteRecords(ctx context.Context, planID uuid.UUID) error {
	return deleteRecords(s.db.WithContext(ctx), planID)
}

func deleteRecords(db *gorm.DB, planID uuid.UUID) error {
	return db.Where("allocation_records.income_plan_id = ?", planID).Delete(&models.AllocationRecord{}).Error
}

func (s *Gorm) WithTx(ctx context.Context, fn func(planner.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}
