package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/allocation"
	v1 "github.com/payplan/backend/internal/controllers/v1"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestIncomePlan(t *testing.T, userID uuid.UUID, p v1.IncomePlanEditable, expectedStatus ...int) v1.IncomePlanResponse {
	if p.Label == "" {
		p.Label = "Salary"
	}

	if p.ExpectedDate.IsZero() {
		p.ExpectedDate = time.Now()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.IncomePlanEditable{p}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/income-plans", body, as(userID))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var plan v1.IncomePlanCreateResponse
	test.DecodeResponse(t, &r, &plan)

	if r.Code == http.StatusCreated {
		return plan.Data[0]
	}

	return v1.IncomePlanResponse{}
}

func (suite *TestSuiteStandard) TestIncomePlansCreate() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID

	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{
		Label:          " Salary July ",
		ExpectedDate:   time.Date(2024, 7, 25, 0, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
		ExpectedAmount: decimal.RequireFromString("2500.50"),
	})

	assert.Equal(suite.T(), "Salary July", p.Data.Label)
	assert.Equal(suite.T(), time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC), p.Data.ExpectedDate, "Only the calendar day is stored")
	assert.Equal(suite.T(), "2500.5", p.Data.ExpectedAmount.String())
	assert.Equal(suite.T(), models.IncomePlanPlanned, p.Data.Status)
	assert.Equal(suite.T(), models.RecurrenceOnce, p.Data.Recurrence)
	assert.False(suite.T(), p.Data.ActualAmount.Valid)
	assert.Nil(suite.T(), p.Data.MatchedTransactionID)
	assert.Equal(suite.T(), p.Data.Links.Self+"/allocations", p.Data.Links.Allocations)
}

func (suite *TestSuiteStandard) TestIncomePlansCreateOffsetMonthBoundary() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	_ = createTestRule(suite.T(), user, v1.RuleEditable{Category: allocation.CategorySavings, Type: allocation.RuleTypePercent, Value: decimal.NewFromInt(20)})

	now := time.Now().UTC()
	cest := time.FixedZone("CEST", 2*60*60)
	nextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, cest)

	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{
		ExpectedDate:   nextMonth,
		ExpectedAmount: decimal.NewFromInt(1000),
	})
	assert.Equal(suite.T(), time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC), p.Data.ExpectedDate)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/forecast?months=2", "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var forecast v1.ForecastResponse
	test.DecodeResponse(suite.T(), &r, &forecast)
	require.Len(suite.T(), forecast.Data, 2)

	assert.Equal(suite.T(), 0, forecast.Data[0].PlanCount, "The plan is not part of the current month")
	assert.Equal(suite.T(), nextMonth.Format("2006-01"), forecast.Data[1].Month.String())
	assert.Equal(suite.T(), 1, forecast.Data[1].PlanCount)
	assert.Equal(suite.T(), "200", forecast.Data[1].TotalSavings.String())
}

func (suite *TestSuiteStandard) TestIncomePlansCreateFails() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID

	tests := []struct {
		name string
		plan v1.IncomePlanEditable
		err  error
	}{
		{"Negative amount", v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(-1)}, models.ErrIncomePlanAmountNegative},
		{"Invalid recurrence", v1.IncomePlanEditable{Recurrence: "yearly"}, models.ErrIncomePlanRecurrenceInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			tt.plan.ExpectedDate = time.Now()

			r := test.Request(t, http.MethodPost, "http://example.com/v1/income-plans", []v1.IncomePlanEditable{tt.plan}, as(user))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.IncomePlanCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomePlansOptions() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{})

	tests := []struct {
		name     string
		path     string
		status   int
		response string
	}{
		{"No plan with this ID", fmt.Sprintf("http://example.com/v1/income-plans/%s", uuid.New()), http.StatusNotFound, ""},
		{"Not a valid UUID", "http://example.com/v1/income-plans/salary", http.StatusBadRequest, ""},
		{"Plan", p.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Allocations", p.Data.Links.Allocations, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Match", p.Data.Links.Match, http.StatusNoContent, "OPTIONS, POST"},
		{"Unmatch", p.Data.Links.Unmatch, http.StatusNoContent, "OPTIONS, POST"},
		{"Miss", p.Data.Links.Miss, http.StatusNoContent, "OPTIONS, POST"},
		{"Reopen", p.Data.Links.Reopen, http.StatusNoContent, "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "", as(user))
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, tt.response, r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestIncomePlansGetFilter() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID

	_ = createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{
		Label:          "Salary July",
		ExpectedDate:   time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC),
		ExpectedAmount: decimal.NewFromInt(2500),
		Recurrence:     models.RecurrenceMonthly,
	})

	_ = createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{
		Label:          "Salary August",
		ExpectedDate:   time.Date(2024, 8, 25, 0, 0, 0, 0, time.UTC),
		ExpectedAmount: decimal.NewFromInt(2500),
		Recurrence:     models.RecurrenceMonthly,
	})

	_ = createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{
		Label:          "Christmas Bonus",
		ExpectedDate:   time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		ExpectedAmount: decimal.NewFromInt(1000),
	})

	// Plans of other users are never listed
	_ = createTestIncomePlan(suite.T(), createTestUser(suite.T(), v1.UserEditable{}).Data.ID, v1.IncomePlanEditable{
		Label:        "Salary July",
		ExpectedDate: time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name   string
		query  string
		labels []string
		total  int64
	}{
		{"All, ordered by date", "", []string{"Salary July", "Salary August", "Christmas Bonus"}, 3},
		{"Label glob prefix", "label=Salary*", []string{"Salary July", "Salary August"}, 2},
		{"Label glob suffix", "label=*Bonus", []string{"Christmas Bonus"}, 1},
		{"Label exact", "label=Salary", []string{}, 0},
		{"Label empty", "label=", []string{}, 0},
		{"Recurrence", "recurrence=monthly", []string{"Salary July", "Salary August"}, 2},
		{"Status", "status=planned", []string{"Salary July", "Salary August", "Christmas Bonus"}, 3},
		{"Status missed", "status=missed", []string{}, 0},
		{"From", "from=2024-08", []string{"Salary August", "Christmas Bonus"}, 2},
		{"Until is inclusive", "until=2024-08", []string{"Salary July", "Salary August"}, 2},
		{"From and until", "from=2024-08&until=2024-08", []string{"Salary August"}, 1},
		{"Offset 1, limit 1", "offset=1&limit=1", []string{"Salary August"}, 3},
		{"Label and limit", "label=Salary*&limit=1", []string{"Salary July"}, 2},
		{"Offset beyond", "offset=5", []string{}, 3},
		{"Limit -1", "limit=-1", []string{"Salary July", "Salary August", "Christmas Bonus"}, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.IncomePlanListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/income-plans?%s", tt.query), "", as(user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			labels := make([]string, 0)
			for _, p := range re.Data {
				labels = append(labels, p.Label)
			}
			assert.Equal(t, tt.labels, labels)
			assert.Equal(t, tt.total, re.Pagination.Total)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-plans?from=2024-13", "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomePlansUpdate() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(2500)})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"label":        "  Salary September ",
		"expectedDate": "2024-09-25T22:30:00-04:00",
		"status":       "matched",
	}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.IncomePlanResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Salary September", updated.Data.Label)
	assert.Equal(suite.T(), time.Date(2024, 9, 26, 0, 0, 0, 0, time.UTC), updated.Data.ExpectedDate)
	assert.Equal(suite.T(), "2500", updated.Data.ExpectedAmount.String(), "Fields not in the body are kept")
	assert.Equal(suite.T(), models.IncomePlanPlanned, updated.Data.Status, "The status cannot be updated directly")

	r = test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{"expectedAmount": "-10"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{"label": "Other"}, as(createTestUser(suite.T(), v1.UserEditable{}).Data.ID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomePlansTransitions() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		check  func(t *testing.T, p v1.IncomePlan)
	}{
		{"Unmatch planned", p.Data.Links.Unmatch, "", http.StatusBadRequest, nil},
		{"Reopen planned", p.Data.Links.Reopen, "", http.StatusBadRequest, nil},
		{"Match without body", p.Data.Links.Match, "", http.StatusBadRequest, nil},
		{"Match without amount", p.Data.Links.Match, map[string]any{"transactionId": "tx-1"}, http.StatusBadRequest, nil},
		{"Match negative amount", p.Data.Links.Match, map[string]any{"actualAmount": "-1"}, http.StatusBadRequest, nil},
		{"Match", p.Data.Links.Match, map[string]any{"actualAmount": "1100", "transactionId": "tx-1"}, http.StatusOK, func(t *testing.T, p v1.IncomePlan) {
			assert.Equal(t, models.IncomePlanMatched, p.Status)
			assert.True(t, p.ActualAmount.Valid)
			assert.Equal(t, "1100", p.ActualAmount.Decimal.String())
			require.NotNil(t, p.MatchedTransactionID)
			assert.Equal(t, "tx-1", *p.MatchedTransactionID)
		}},
		{"Match matched", p.Data.Links.Match, map[string]any{"actualAmount": "1100"}, http.StatusBadRequest, nil},
		{"Miss matched", p.Data.Links.Miss, "", http.StatusBadRequest, nil},
		{"Unmatch", p.Data.Links.Unmatch, "", http.StatusOK, func(t *testing.T, p v1.IncomePlan) {
			assert.Equal(t, models.IncomePlanPlanned, p.Status)
			assert.False(t, p.ActualAmount.Valid)
			assert.Nil(t, p.MatchedTransactionID)
		}},
		{"Miss", p.Data.Links.Miss, "", http.StatusOK, func(t *testing.T, p v1.IncomePlan) {
			assert.Equal(t, models.IncomePlanMissed, p.Status)
		}},
		{"Match missed", p.Data.Links.Match, map[string]any{"actualAmount": "1000"}, http.StatusBadRequest, nil},
		{"Reopen", p.Data.Links.Reopen, "", http.StatusOK, func(t *testing.T, p v1.IncomePlan) {
			assert.Equal(t, models.IncomePlanPlanned, p.Status)
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.path, tt.body, as(user))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.IncomePlanResponse
			test.DecodeResponse(t, &r, &response)

			if tt.check != nil {
				tt.check(t, *response.Data)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestIncomePlansTransitionOtherUser() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	other := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{})

	r := test.Request(suite.T(), http.MethodPost, p.Data.Links.Miss, "", as(other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "", as(user))
	var response v1.IncomePlanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.IncomePlanPlanned, response.Data.Status)
}

func (suite *TestSuiteStandard) TestIncomePlansDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	_ = createTestRule(suite.T(), user, v1.RuleEditable{})
	p := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	// Plans with allocation records can be deleted
	r := test.Request(suite.T(), http.MethodPost, p.Data.Links.Allocations, "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "", as(createTestUser(suite.T(), v1.UserEditable{}).Data.ID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.AllocationRecord{}).Where("income_plan_id = ?", p.Data.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
