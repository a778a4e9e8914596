package models_test

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryNameEmpty() {
	err := models.DB.Create(&models.Category{
		OwnerID: uuid.New(),
		Name:    "   ",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryNameEmpty)
}

func (suite *TestSuiteStandard) TestCategoryKeywordsRoundTrip() {
	category := suite.createTestCategory(models.Category{
		OwnerID:  uuid.New(),
		Name:     "Groceries",
		Keywords: models.Keywords{"aldi ", " rewe", "*market*"},
		Active:   true,
	})

	var loaded models.Category
	err := models.DB.First(&loaded, category.ID).Error
	suite.Require().NoError(err)

	suite.Assert().Equal(models.Keywords{"aldi", "rewe", "*market*"}, loaded.Keywords)
}

func (suite *TestSuiteStandard) TestCategoryKeywordsNil() {
	category := suite.createTestCategory(models.Category{
		OwnerID: uuid.New(),
		Name:    "Misc",
		Active:  true,
	})

	var loaded models.Category
	err := models.DB.First(&loaded, category.ID).Error
	suite.Require().NoError(err)

	suite.Assert().Empty(loaded.Keywords)
}
