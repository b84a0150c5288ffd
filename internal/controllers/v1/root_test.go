package v1_test

import (
	"net/http"

	v1 "github.com/payplan/backend/internal/controllers/v1"
	"github.com/payplan/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.Links{
		Users:       "http://example.com/v1/users",
		Accounts:    "http://example.com/v1/accounts",
		Rules:       "http://example.com/v1/rules",
		IncomePlans: "http://example.com/v1/income-plans",
		Preview:     "http://example.com/v1/allocations/preview",
		Forecast:    "http://example.com/v1/forecast",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestOptionsCollections() {
	tests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/users", "OPTIONS, POST"},
		{"http://example.com/v1/accounts", "OPTIONS, GET, POST"},
		{"http://example.com/v1/rules", "OPTIONS, GET, POST"},
		{"http://example.com/v1/income-plans", "OPTIONS, GET, POST"},
		{"http://example.com/v1/allocations/preview", "OPTIONS, POST"},
		{"http://example.com/v1/forecast", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), http.MethodOptions, tt.path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		assert.Equal(suite.T(), tt.response, r.Header().Get("allow"), "Path: %s", tt.path)
	}
}
