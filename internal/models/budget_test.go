package models_test

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetInvalid() {
	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{
			"empty category",
			models.Budget{
				OwnerID:     uuid.New(),
				Category:    "  ",
				WindowStart: types.NewDate(2025, 6, 1),
				WindowEnd:   types.NewDate(2025, 6, 30),
			},
			models.ErrBudgetCategoryEmpty,
		},
		{
			"negative cap",
			models.Budget{
				OwnerID:     uuid.New(),
				Category:    "food",
				AmountCap:   decimal.NewFromFloat(-100),
				WindowStart: types.NewDate(2025, 6, 1),
				WindowEnd:   types.NewDate(2025, 6, 30),
			},
			models.ErrBudgetCapNegative,
		},
		{
			"threshold above 100",
			models.Budget{
				OwnerID:           uuid.New(),
				Category:          "food",
				AmountCap:         decimal.NewFromFloat(100),
				AlertThresholdPct: 101,
				WindowStart:       types.NewDate(2025, 6, 1),
				WindowEnd:         types.NewDate(2025, 6, 30),
			},
			models.ErrBudgetThresholdOutOfRange,
		},
		{
			"window ends before it starts",
			models.Budget{
				OwnerID:     uuid.New(),
				Category:    "food",
				AmountCap:   decimal.NewFromFloat(100),
				WindowStart: types.NewDate(2025, 6, 30),
				WindowEnd:   types.NewDate(2025, 6, 1),
			},
			models.ErrBudgetWindowInvalid,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.budget).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetProgressPct() {
	tests := []struct {
		name     string
		cap      float64
		spent    float64
		progress int64
	}{
		{"empty budget", 100, 0, 0},
		{"half spent", 100, 50, 50},
		{"rounds to nearest whole percent", 120, 100, 83},
		{"exceeded", 100, 150, 150},
		{"zero cap reports no progress", 0, 50, 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			budget := models.Budget{
				AmountCap: decimal.NewFromFloat(tt.cap),
				Spent:     decimal.NewFromFloat(tt.spent),
			}

			suite.Assert().Equal(tt.progress, budget.ProgressPct())
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetRemaining() {
	budget := models.Budget{
		AmountCap: decimal.NewFromFloat(120),
		Spent:     decimal.NewFromFloat(150),
	}

	suite.Assert().True(budget.Remaining().IsZero(), "Remaining must not go negative, is %s", budget.Remaining())

	budget.Spent = decimal.NewFromFloat(20)
	suite.Assert().True(budget.Remaining().Equal(decimal.NewFromFloat(100)))
}

func (suite *TestSuiteStandard) TestBudgetStatus() {
	tests := []struct {
		name      string
		cap       float64
		spent     float64
		threshold int64
		status    models.BudgetStatus
	}{
		{"on track", 100, 50, 80, models.BudgetOnTrack},
		{"warning at threshold", 100, 80, 80, models.BudgetWarning},
		{"exceeded at cap", 100, 100, 80, models.BudgetExceeded},
		{"exceeded beats warning", 100, 150, 80, models.BudgetExceeded},
		{"zero threshold warns immediately", 100, 1, 0, models.BudgetWarning},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			budget := models.Budget{
				AmountCap:         decimal.NewFromFloat(tt.cap),
				Spent:             decimal.NewFromFloat(tt.spent),
				AlertThresholdPct: tt.threshold,
			}

			suite.Assert().Equal(tt.status, budget.Status())
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetWindow() {
	budget := suite.createTestBudget(models.Budget{
		OwnerID:     uuid.New(),
		Category:    "food",
		PeriodKind:  period.Monthly,
		WindowStart: types.NewDate(2025, 6, 1),
		WindowEnd:   types.NewDate(2025, 6, 30),
		AmountCap:   decimal.NewFromFloat(120),
	})

	window := budget.Window()
	suite.Assert().True(window.Contains(types.NewDate(2025, 6, 30)), "Window end date is part of the window")
	suite.Assert().False(window.Contains(types.NewDate(2025, 7, 1)))
}
