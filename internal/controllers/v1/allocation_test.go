package v1_test

import (
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

// createWaterfall creates a user with 20% to savings, 300 fixed to spending
// and the remainder to investing.
func createWaterfall(t *testing.T) uuid.UUID {
	user := createTestUser(t, v1.UserEditable{}).Data.ID

	savings := createTestAccount(t, user, v1.AccountEditable{Name: "Emergency Fund"}).Data.ID
	spending := createTestAccount(t, user, v1.AccountEditable{Name: "Checking"}).Data.ID
	investing := createTestAccount(t, user, v1.AccountEditable{Name: "Brokerage"}).Data.ID

	_ = createTestRule(t, user, v1.RuleEditable{AccountID: investing, Category: allocation.CategoryInvesting, Type: allocation.RuleTypePercent, Value: decimal.NewFromInt(100), Priority: 3})
	_ = createTestRule(t, user, v1.RuleEditable{AccountID: savings, Category: allocation.CategorySavings, Type: allocation.RuleTypePercent, Value: decimal.NewFromInt(20), Priority: 1})
	_ = createTestRule(t, user, v1.RuleEditable{AccountID: spending, Category: allocation.CategorySpending, Type: allocation.RuleTypeFixed, Value: decimal.NewFromInt(300), Priority: 2})

	return user
}

func runAllocations(t *testing.T, user uuid.UUID, plan v1.IncomePlanResponse, expectedStatus ...int) v1.AllocationRecordListResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPost, plan.Data.Links.Allocations, "", as(user))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.AllocationRecordListResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func recordAmounts(records []v1.AllocationRecord) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		result = append(result, r.Amount.String())
	}
	return result
}

func (suite *TestSuiteStandard) TestAllocationsRun() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	records := runAllocations(suite.T(), user, plan)
	require.Len(suite.T(), records.Data, 3)
	assert.Equal(suite.T(), []string{"200", "300", "500"}, recordAmounts(records.Data))

	categories := []string{allocation.CategorySavings, allocation.CategorySpending, allocation.CategoryInvesting}
	for i, r := range records.Data {
		assert.Equal(suite.T(), categories[i], r.Category)
		assert.Equal(suite.T(), plan.Data.ID, r.IncomePlanID)
		assert.Equal(suite.T(), user, r.UserID)
		assert.True(suite.T(), r.IsForecast)
		assert.Equal(suite.T(), plan.Data.Links.Self, r.Links.IncomePlan)
	}

	// Running again replaces the records
	again := runAllocations(suite.T(), user, plan)
	assert.Equal(suite.T(), recordAmounts(records.Data), recordAmounts(again.Data))

	r := test.Request(suite.T(), http.MethodGet, plan.Data.Links.Allocations, "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var stored v1.AllocationRecordListResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	require.Len(suite.T(), stored.Data, 3)
	for i, record := range stored.Data {
		assert.Equal(suite.T(), again.Data[i].ID, record.ID)
	}
}

func (suite *TestSuiteStandard) TestAllocationsRunWithoutRules() {
	user := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	records := runAllocations(suite.T(), user, plan)
	assert.NotNil(suite.T(), records.Data)
	assert.Len(suite.T(), records.Data, 0)
}

func (suite *TestSuiteStandard) TestAllocationsRunOtherUser() {
	user := createWaterfall(suite.T())
	other := createTestUser(suite.T(), v1.UserEditable{}).Data.ID
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	_ = runAllocations(suite.T(), other, plan, http.StatusNotFound)

	r := test.Request(suite.T(), http.MethodGet, plan.Data.Links.Allocations, "", as(other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAllocationsMatchedPlan() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})
	_ = runAllocations(suite.T(), user, plan)

	r := test.Request(suite.T(), http.MethodPost, plan.Data.Links.Match, map[string]any{"actualAmount": "1500"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, plan.Data.Links.Allocations, "", as(user))
	var matched v1.AllocationRecordListResponse
	test.DecodeResponse(suite.T(), &r, &matched)
	assert.Equal(suite.T(), []string{"200", "300", "500"}, recordAmounts(matched.Data), "Matching keeps the amounts")
	for _, record := range matched.Data {
		assert.False(suite.T(), record.IsForecast)
	}

	// Running again uses the actual amount
	records := runAllocations(suite.T(), user, plan)
	assert.Equal(suite.T(), []string{"300", "300", "900"}, recordAmounts(records.Data))
	for _, record := range records.Data {
		assert.False(suite.T(), record.IsForecast)
	}
}

func (suite *TestSuiteStandard) TestAllocationsUpdate() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})
	record := runAllocations(suite.T(), user, plan).Data[0]

	r := test.Request(suite.T(), http.MethodPatch, record.Links.Self, map[string]any{"amount": "250"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AllocationRecordResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "250", updated.Data.Amount.String())
	assert.Equal(suite.T(), record.RuleID, updated.Data.RuleID)

	tests := []struct {
		name   string
		user   uuid.UUID
		body   any
		status int
	}{
		{"Negative amount", user, map[string]any{"amount": "-1"}, http.StatusBadRequest},
		{"Broken body", user, `{ "amount": 2 `, http.StatusBadRequest},
		{"Empty body", user, "", http.StatusBadRequest},
		{"Other user", createTestUser(suite.T(), v1.UserEditable{}).Data.ID, map[string]any{"amount": "1"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, record.Links.Self, tt.body, as(tt.user))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/allocations/"+uuid.NewString(), map[string]any{"amount": "1"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAllocationsUpdateRealized() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})
	record := runAllocations(suite.T(), user, plan).Data[0]

	r := test.Request(suite.T(), http.MethodPost, plan.Data.Links.Match, map[string]any{"actualAmount": "1000"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, record.Links.Self, map[string]any{"amount": "250"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AllocationRecordResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrAllocationRecordRealized.Error(), *response.Error)

	// Unmatching makes the record editable again
	r = test.Request(suite.T(), http.MethodPost, plan.Data.Links.Unmatch, "", as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, record.Links.Self, map[string]any{"amount": "250"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAllocationsOptions() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})
	record := runAllocations(suite.T(), user, plan).Data[0]

	tests := []struct {
		name     string
		path     string
		status   int
		response string
	}{
		{"Preview", "http://example.com/v1/allocations/preview", http.StatusNoContent, "OPTIONS, POST"},
		{"Record", record.Links.Self, http.StatusNoContent, "OPTIONS, PATCH"},
		{"No record with this ID", "http://example.com/v1/allocations/" + uuid.NewString(), http.StatusNotFound, ""},
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

func (suite *TestSuiteStandard) TestAllocationsPreview() {
	user := createWaterfall(suite.T())

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/allocations/preview", map[string]any{"amount": "1000"}, as(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var preview v1.PreviewResponse
	test.DecodeResponse(suite.T(), &r, &preview)
	require.NotNil(suite.T(), preview.Data)
	require.Len(suite.T(), preview.Data.Allocations, 3)

	names := []string{"Emergency Fund", "Checking", "Brokerage"}
	amounts := []string{"200", "300", "500"}
	for i, line := range preview.Data.Allocations {
		assert.Equal(suite.T(), names[i], line.AccountName)
		assert.Equal(suite.T(), amounts[i], line.Amount.String())
	}
	assert.Equal(suite.T(), allocation.RuleTypeFixed, preview.Data.Allocations[1].RuleType)
	assert.True(suite.T(), preview.Data.Unallocated.IsZero())

	// Nothing is persisted
	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.AllocationRecord{}).Where("user_id = ?", user).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestAllocationsPreviewFails() {
	user := createWaterfall(suite.T())

	tests := []struct {
		name    string
		body    any
		headers map[string]string
		status  int
	}{
		{"Negative amount", map[string]any{"amount": "-1"}, as(user), http.StatusBadRequest},
		{"No amount", map[string]any{}, as(user), http.StatusBadRequest},
		{"No body", "", as(user), http.StatusBadRequest},
		{"No user", map[string]any{"amount": "1"}, map[string]string{}, http.StatusBadRequest},
		{"Unknown user", map[string]any{"amount": "1"}, as(uuid.New()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/allocations/preview", tt.body, tt.headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsRecordsKeepCreationTime() {
	user := createWaterfall(suite.T())
	plan := createTestIncomePlan(suite.T(), user, v1.IncomePlanEditable{ExpectedAmount: decimal.NewFromInt(1000)})

	before := time.Now().Add(-time.Minute)
	records := runAllocations(suite.T(), user, plan)
	for _, r := range records.Data {
		assert.True(suite.T(), r.CreatedAt.After(before), "CreatedAt %s is not after %s", r.CreatedAt, before)
	}
}
