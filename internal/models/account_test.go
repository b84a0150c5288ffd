package models_test

import (
	"strings"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	name := "\t Emergency Fund   "
	note := " For when the roof leaks    "

	account := suite.createTestAccount(models.Account{
		Name: name,
		Note: note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), account.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), account.Note)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestAccount(models.Account{UserID: user.ID, Name: "Savings"})

	err := models.DB.Create(&models.Account{UserID: user.ID, Name: "Savings"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)

	// The same name is fine for a different user
	other := suite.createTestUser(models.User{})
	err = models.DB.Create(&models.Account{UserID: other.ID, Name: "Savings"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestAccountUserDoesNotExist() {
	err := models.DB.Create(&models.Account{UserID: uuid.New(), Name: "Orphan"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountDeleteInUse() {
	account := suite.createTestAccount(models.Account{})
	_ = suite.createTestAllocationRule(models.AllocationRule{
		UserID:    account.UserID,
		AccountID: account.ID,
	})

	err := models.DB.Delete(&account).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceInUse)
}
