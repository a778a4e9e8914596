package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/period"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetStatus describes how far along a budget is in its window.
type BudgetStatus string

const (
	BudgetOnTrack  BudgetStatus = "on-track"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// Budget is a spending cap for one category over one period window.
//
// Spent is a cache of the sum of expense transactions for the budget's
// owner and category inside the window. It is always recomputed in full
// from the ledger, never incremented, so that refreshing is idempotent
// and safe under concurrent writers.
type Budget struct {
	DefaultModel
	OwnerID           uuid.UUID       `json:"ownerId" gorm:"index"`
	Category          string          `json:"category" gorm:"index"`
	PeriodKind        period.Kind     `json:"periodKind"`
	WindowStart       types.Date      `json:"windowStart"`
	WindowEnd         types.Date      `json:"windowEnd"`
	AmountCap         decimal.Decimal `json:"amountCap" gorm:"type:DECIMAL(20,8)"`
	Spent             decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)"`
	AlertThresholdPct int64           `json:"alertThresholdPct"`
	Active            bool            `json:"active"`
}

var (
	ErrBudgetCapNegative         = errors.New("budget caps must not be negative")
	ErrBudgetThresholdOutOfRange = errors.New("budget alert thresholds must be between 0 and 100")
	ErrBudgetWindowInvalid       = errors.New("budget windows must not end before they start")
	ErrBudgetCategoryEmpty       = errors.New("budgets must have a category")
)

// BeforeSave validates the budget and normalizes its category.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)

	if b.Category == "" {
		return ErrBudgetCategoryEmpty
	}

	if b.AmountCap.IsNegative() {
		return ErrBudgetCapNegative
	}

	if b.AlertThresholdPct < 0 || b.AlertThresholdPct > 100 {
		return ErrBudgetThresholdOutOfRange
	}

	if b.WindowEnd.Before(b.WindowStart) {
		return ErrBudgetWindowInvalid
	}

	return nil
}

// Window returns the budget's period window.
func (b Budget) Window() period.Window {
	return period.Window{Start: b.WindowStart, End: b.WindowEnd}
}

// ProgressPct returns how much of the cap is spent, rounded to a whole
// percentage. A budget without a cap always reports zero progress.
func (b Budget) ProgressPct() int64 {
	if !b.AmountCap.IsPositive() {
		return 0
	}

	return b.Spent.Div(b.AmountCap).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Remaining returns the amount left to spend, never negative.
func (b Budget) Remaining() decimal.Decimal {
	remaining := b.AmountCap.Sub(b.Spent)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// Status derives the budget status from the progress percentage.
func (b Budget) Status() BudgetStatus {
	progress := b.ProgressPct()

	switch {
	case progress >= 100:
		return BudgetExceeded
	case progress >= b.AlertThresholdPct:
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}
