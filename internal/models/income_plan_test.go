package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestIncomePlanDefaults() {
	user := suite.createTestUser(models.User{})
	plan := suite.createTestIncomePlan(models.IncomePlan{
		UserID: user.ID,
		Label:  "  Salary ",
	})

	assert.Equal(suite.T(), models.IncomePlanPlanned, plan.Status)
	assert.Equal(suite.T(), models.RecurrenceOnce, plan.Recurrence)
	assert.Equal(suite.T(), "Salary", plan.Label)
	assert.False(suite.T(), plan.ActualAmount.Valid)
	assert.Nil(suite.T(), plan.MatchedTransactionID)
}

func (suite *TestSuiteStandard) TestIncomePlanExpectedDateNormalized() {
	user := suite.createTestUser(models.User{})
	berlin := time.FixedZone("CEST", 2*60*60)

	plan := suite.createTestIncomePlan(models.IncomePlan{
		UserID:       user.ID,
		ExpectedDate: time.Date(2024, 7, 15, 13, 37, 0, 0, berlin),
	})

	var stored models.IncomePlan
	require.Nil(suite.T(), models.DB.First(&stored, plan.ID).Error)
	expected := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.True(suite.T(), expected.Equal(stored.ExpectedDate), "Expected date is %s", stored.ExpectedDate)
	assert.Equal(suite.T(), time.UTC, stored.ExpectedDate.Location())
}

func (suite *TestSuiteStandard) TestIncomePlanExpectedDateKeepsCalendarDay() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name     string
		date     time.Time
		expected time.Time
	}{
		{"Positive offset at month start", time.Date(2024, 8, 1, 0, 0, 0, 0, time.FixedZone("CEST", 2*60*60)), time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"Negative offset at month end", time.Date(2024, 7, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60)), time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)},
		{"Positive offset at year start", time.Date(2025, 1, 1, 1, 0, 0, 0, time.FixedZone("NZDT", 13*60*60)), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		plan := suite.createTestIncomePlan(models.IncomePlan{
			UserID:       user.ID,
			ExpectedDate: tt.date,
		})

		var stored models.IncomePlan
		require.Nil(suite.T(), models.DB.First(&stored, plan.ID).Error, tt.name)
		assert.True(suite.T(), tt.expected.Equal(stored.ExpectedDate), "%s: expected date is %s", tt.name, stored.ExpectedDate)
	}
}

func (suite *TestSuiteStandard) TestIncomePlanUserDoesNotExist() {
	err := models.DB.Create(&models.IncomePlan{
		UserID:         uuid.New(),
		ExpectedDate:   time.Now(),
		ExpectedAmount: decimal.NewFromInt(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestIncomePlanAfterSave() {
	tests := []struct {
		name string
		plan models.IncomePlan
		err  error
	}{
		{"Valid", models.IncomePlan{ExpectedAmount: decimal.NewFromInt(10), Recurrence: models.RecurrenceMonthly, Status: models.IncomePlanPlanned}, nil},
		{"Zero amount", models.IncomePlan{ExpectedAmount: decimal.Zero, Recurrence: models.RecurrenceWeekly, Status: models.IncomePlanMissed}, nil},
		{"Negative amount", models.IncomePlan{ExpectedAmount: decimal.NewFromInt(-10), Recurrence: models.RecurrenceOnce, Status: models.IncomePlanPlanned}, models.ErrIncomePlanAmountNegative},
		{"Invalid recurrence", models.IncomePlan{Recurrence: "yearly", Status: models.IncomePlanPlanned}, models.ErrIncomePlanRecurrenceInvalid},
		{"Invalid status", models.IncomePlan{Recurrence: models.RecurrenceBiweekly, Status: "lost"}, models.ErrIncomePlanStatusInvalid},
	}

	for _, tt := range tests {
		err := tt.plan.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestIncomePlanDeleteWithRecords() {
	user := suite.createTestUser(models.User{})
	plan := suite.createTestIncomePlan(models.IncomePlan{UserID: user.ID})
	_ = suite.createTestAllocationRecord(models.AllocationRecord{
		UserID:       user.ID,
		IncomePlanID: plan.ID,
		Amount:       decimal.NewFromInt(10),
	})

	err := models.DB.Delete(&plan).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceInUse)
}

func (suite *TestSuiteStandard) TestIncomePlanUpdateNormalized() {
	user := suite.createTestUser(models.User{})
	plan := suite.createTestIncomePlan(models.IncomePlan{UserID: user.ID, Label: "Salary"})

	err := models.DB.Model(&plan).Select("Label", "ExpectedDate").Updates(models.IncomePlan{
		Label:        " Bonus  ",
		ExpectedDate: time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC),
	}).Error
	require.Nil(suite.T(), err)

	var stored models.IncomePlan
	require.Nil(suite.T(), models.DB.First(&stored, plan.ID).Error)
	assert.Equal(suite.T(), "Bonus", stored.Label)
	assert.True(suite.T(), time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC).Equal(stored.ExpectedDate), "Expected date is %s", stored.ExpectedDate)
}
