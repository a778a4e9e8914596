package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:       uuid.New(),
		Kind:          models.Expense,
		Amount:        decimal.NewFromFloat(17.23),
		Category:      " food  ",
		Merchant:      " Gustavo's Tacos ",
		PaymentMethod: "  card",
		Description:   " Lunch with the team ",
	})

	suite.Assert().Equal("food", transaction.Category)
	suite.Assert().Equal("Gustavo's Tacos", transaction.Merchant)
	suite.Assert().Equal("card", transaction.PaymentMethod)
	suite.Assert().Equal("Lunch with the team", transaction.Description)
}

func (suite *TestSuiteStandard) TestTransactionInvalidKind() {
	err := models.DB.Create(&models.Transaction{
		OwnerID:  uuid.New(),
		Kind:     "transfer",
		Amount:   decimal.NewFromFloat(10),
		Category: "misc",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrTransactionKindInvalid)
}

func (suite *TestSuiteStandard) TestTransactionNegativeAmount() {
	err := models.DB.Create(&models.Transaction{
		OwnerID:  uuid.New(),
		Kind:     models.Expense,
		Amount:   decimal.NewFromFloat(-1),
		Category: "misc",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNegative)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaults() {
	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:  uuid.New(),
		Kind:     models.Income,
		Amount:   decimal.NewFromFloat(2500),
		Category: "salary",
	})

	suite.Assert().False(transaction.Date.IsZero(), "Transaction date was not defaulted")
	suite.Assert().Equal(types.DateOf(time.Now()), transaction.Date)
}

func (suite *TestSuiteStandard) TestTransactionZeroAmount() {
	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:  uuid.New(),
		Kind:     models.Expense,
		Amount:   decimal.Zero,
		Category: "misc",
	})

	suite.Assert().True(transaction.Amount.IsZero())
}
