package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/payplan/backend/internal/controllers/v1"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestUser(t *testing.T, u v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if u.Name == "" {
		u.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.UserEditable{u}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var user v1.UserCreateResponse
	test.DecodeResponse(t, &r, &user)

	if r.Code == http.StatusCreated {
		return user.Data[0]
	}

	return v1.UserResponse{}
}

// as returns the header identifying the user for a request.
func as(userID uuid.UUID) map[string]string {
	return map[string]string{v1.HeaderUserID: userID.String()}
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	tests := []struct {
		name     string
		user     v1.UserEditable
		status   int
		currency string
	}{
		{"No locale", v1.UserEditable{Name: "Alex"}, http.StatusCreated, ""},
		{"Currency from locale", v1.UserEditable{Locale: "de-DE"}, http.StatusCreated, "€"},
		{"Explicit currency", v1.UserEditable{Locale: "de-DE", Currency: "EUR"}, http.StatusCreated, "EUR"},
		{"Invalid locale", v1.UserEditable{Locale: "not a locale"}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			u := createTestUser(t, tt.user, tt.status)
			if tt.status != http.StatusCreated {
				return
			}

			assert.Equal(t, tt.currency, u.Data.Currency)
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/users/%s", u.Data.ID), u.Data.Links.Self)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", `{ "name": 2 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "the request body must not be empty", *response.Error)
}

func (suite *TestSuiteStandard) TestUsersGet() {
	u := createTestUser(suite.T(), v1.UserEditable{Name: "Alex", Note: "Paid twice a month"})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing user", u.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No user with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID (positive number)", "23", http.StatusBadRequest},
		{"Invalid ID (string)", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var user v1.UserResponse
			test.DecodeResponse(t, &r, &user)

			if tt.status == http.StatusOK {
				assert.Equal(t, "Paid twice a month", user.Data.Note)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUsersDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{{Name: "Alex"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Data[0].Error)
}
