// Package budget implements budget tracking: spent recomputation,
// edge-triggered alerting, overviews and cap recommendations.
package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DefaultAlertThresholdPct is the alert threshold the API applies when
// a caller does not send one. The tracker itself stores thresholds as
// given, an explicit zero disables threshold warnings.
const DefaultAlertThresholdPct = 80

var (
	ErrBudgetConflict = errors.New("an active budget for this category already overlaps the requested window")
	ErrBudgetNotFound = errors.New("there is no budget with this ID")
)

// AlertType distinguishes threshold warnings from exceeded caps.
type AlertType string

const (
	AlertWarning  AlertType = "warning"
	AlertExceeded AlertType = "exceeded"
)

// AlertEvent is emitted when a budget's spent total crosses its alert
// threshold or its cap. Delivery is the Notifier's responsibility.
type AlertEvent struct {
	OwnerID     uuid.UUID       `json:"ownerId"`
	Category    string          `json:"category"`
	Type        AlertType       `json:"type"`
	SpentAmount decimal.Decimal `json:"spentAmount"`
	CapAmount   decimal.Decimal `json:"capAmount"`
}

// Notifier delivers alert events to the user. Implementations own their
// delivery channel and retry policy.
type Notifier interface {
	Notify(event AlertEvent) error
}

// Tracker owns budgets and keeps their spent caches in sync with the
// ledger.
//
// The spent cache is only ever written as a full recompute from the
// ledger. Recomputes are idempotent and commutative, so refreshing the
// same budget concurrently is safe, the last writer wins with a value
// every other writer agrees on.
type Tracker struct {
	db       *gorm.DB
	ledger   *ledger.Ledger
	notifier Notifier
}

// New returns a Tracker. The notifier may be nil, alert events are then
// only logged.
func New(db *gorm.DB, l *ledger.Ledger, notifier Notifier) *Tracker {
	return &Tracker{db: db, ledger: l, notifier: notifier}
}

// CreateBudget stores a new active budget and computes its initial spent
// total.
//
// Creation fails with ErrBudgetConflict when an active budget for the
// same owner and category overlaps the requested window.
func (t *Tracker) CreateBudget(b models.Budget) (models.Budget, error) {
	b.Active = true

	var count int64
	err := t.db.Model(&models.Budget{}).
		Where("owner_id = ? AND category = ? AND active = ?", b.OwnerID, b.Category, true).
		Where("window_start <= ? AND window_end >= ?", b.WindowEnd, b.WindowStart).
		Count(&count).Error
	if err != nil {
		return models.Budget{}, fmt.Errorf("checking for overlapping budgets failed: %w", err)
	}

	if count > 0 {
		return models.Budget{}, ErrBudgetConflict
	}

	err = t.db.Create(&b).Error
	if err != nil {
		return models.Budget{}, err
	}

	err = t.RefreshSpent(&b)
	if err != nil {
		return models.Budget{}, err
	}

	return b, nil
}

// RefreshSpent recomputes the budget's spent cache from the ledger and
// writes it back. Calling it again without intervening transaction
// changes yields the identical value.
func (t *Tracker) RefreshSpent(b *models.Budget) error {
	spent, err := t.ledger.CategoryExpenses(b.OwnerID, b.Category, b.Window())
	if err != nil {
		return err
	}

	// Full recompute write, never an increment
	err = t.db.Model(b).Update("spent", spent).Error
	if err != nil {
		return fmt.Errorf("updating spent for budget %s failed: %w", b.ID, err)
	}

	b.Spent = spent
	return nil
}

// CheckAlert returns the alert event for a spent transition, or nil.
//
// Alerts are edge-triggered: an event fires only when newSpent reaches a
// boundary that previousSpent was still below. A budget that stays above
// its threshold does not fire again, this is what keeps one notification
// per crossing. Inactive budgets never fire.
func (t *Tracker) CheckAlert(b models.Budget, previousSpent, newSpent decimal.Decimal) *AlertEvent {
	if !b.Active {
		return nil
	}

	event := AlertEvent{
		OwnerID:     b.OwnerID,
		Category:    b.Category,
		SpentAmount: newSpent,
		CapAmount:   b.AmountCap,
	}

	if newSpent.GreaterThanOrEqual(b.AmountCap) && previousSpent.LessThan(b.AmountCap) {
		event.Type = AlertExceeded
		return &event
	}

	threshold := b.AmountCap.Mul(decimal.NewFromInt(b.AlertThresholdPct)).Div(decimal.NewFromInt(100))
	if newSpent.GreaterThanOrEqual(threshold) && previousSpent.LessThan(threshold) {
		event.Type = AlertWarning
		return &event
	}

	return nil
}

// HandleTransaction refreshes all active budgets that a transaction
// write touches and dispatches the alert events the refresh triggers.
// It returns the fired events.
func (t *Tracker) HandleTransaction(transaction models.Transaction) ([]AlertEvent, error) {
	if transaction.Kind != models.Expense {
		return nil, nil
	}

	var budgets []models.Budget
	err := t.db.
		Where("owner_id = ? AND category = ? AND active = ?", transaction.OwnerID, transaction.Category, true).
		Where("window_start <= ? AND window_end >= ?", transaction.Date, transaction.Date).
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("finding budgets for transaction failed: %w", err)
	}

	var events []AlertEvent
	for i := range budgets {
		previous := budgets[i].Spent

		err = t.RefreshSpent(&budgets[i])
		if err != nil {
			return events, err
		}

		event := t.CheckAlert(budgets[i], previous, budgets[i].Spent)
		if event == nil {
			continue
		}

		events = append(events, *event)
		t.dispatch(*event)
	}

	return events, nil
}

// dispatch hands an event to the notifier. Delivery failures are logged,
// the engine does not retry.
func (t *Tracker) dispatch(event AlertEvent) {
	if t.notifier == nil {
		log.Debug().
			Str("category", event.Category).
			Str("type", string(event.Type)).
			Msg("no notifier configured, dropping alert event")
		return
	}

	err := t.notifier.Notify(event)
	if err != nil {
		log.Error().Err(err).
			Str("category", event.Category).
			Str("type", string(event.Type)).
			Msg("notifier failed to deliver alert event")
	}
}

// Budgets returns the user's active budgets for a period kind, spent
// caches refreshed, ordered by category.
func (t *Tracker) Budgets(ownerID uuid.UUID, kind period.Kind) ([]models.Budget, error) {
	var budgets []models.Budget
	err := t.db.
		Where("owner_id = ? AND period_kind = ? AND active = ?", ownerID, kind, true).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		err = t.RefreshSpent(&budgets[i])
		if err != nil {
			return nil, err
		}
	}

	return budgets, nil
}

// Deactivate marks a budget inactive. Inactive budgets keep their data
// but never fire alerts again.
func (t *Tracker) Deactivate(id uuid.UUID) error {
	budget, err := t.find(id)
	if err != nil {
		return err
	}

	return t.db.Model(&budget).Update("active", false).Error
}

// Delete removes a budget permanently.
func (t *Tracker) Delete(id uuid.UUID) error {
	budget, err := t.find(id)
	if err != nil {
		return err
	}

	return t.db.Unscoped().Delete(&budget).Error
}

func (t *Tracker) find(id uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := t.db.First(&budget, "id = ?", id).Error
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Budget{}, ErrBudgetNotFound
	}

	return budget, err
}

// CategorySummary is the per-category slice of an overview.
type CategorySummary struct {
	Category    string              `json:"category"`
	Budgeted    decimal.Decimal     `json:"budgeted"`
	Spent       decimal.Decimal     `json:"spent"`
	Remaining   decimal.Decimal     `json:"remaining"`
	ProgressPct int64               `json:"progressPct"`
	Status      models.BudgetStatus `json:"status"`
}

// Overview aggregates all active budgets of one period window.
type Overview struct {
	PeriodKind         period.Kind       `json:"periodKind"`
	Window             period.Window     `json:"window"`
	TotalBudgeted      decimal.Decimal   `json:"totalBudgeted"`
	TotalSpent         decimal.Decimal   `json:"totalSpent"`
	TotalRemaining     decimal.Decimal   `json:"totalRemaining"`
	OverallProgressPct int64             `json:"overallProgressPct"`
	BudgetCount        int               `json:"budgetCount"`
	Categories         []CategorySummary `json:"categories"`
}

// Overview refreshes every active budget touching the period window
// containing the reference instant and aggregates their totals.
func (t *Tracker) Overview(ownerID uuid.UUID, kind period.Kind, ref time.Time) (Overview, error) {
	window := period.Resolve(kind, ref)

	var budgets []models.Budget
	err := t.db.
		Where("owner_id = ? AND active = ?", ownerID, true).
		Where("window_start <= ? AND window_end >= ?", window.End, window.Start).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		return Overview{}, err
	}

	// Spent recomputes are idempotent full recomputes, so refreshing
	// the budgets concurrently is safe.
	g := new(errgroup.Group)
	for i := range budgets {
		g.Go(func() error {
			return t.RefreshSpent(&budgets[i])
		})
	}

	err = g.Wait()
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		PeriodKind:     kind,
		Window:         window,
		TotalBudgeted:  decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		BudgetCount:    len(budgets),
		Categories:     make([]CategorySummary, 0, len(budgets)),
	}

	for _, b := range budgets {
		overview.TotalBudgeted = overview.TotalBudgeted.Add(b.AmountCap)
		overview.TotalSpent = overview.TotalSpent.Add(b.Spent)

		overview.Categories = append(overview.Categories, CategorySummary{
			Category:    b.Category,
			Budgeted:    b.AmountCap,
			Spent:       b.Spent,
			Remaining:   b.Remaining(),
			ProgressPct: b.ProgressPct(),
			Status:      b.Status(),
		})
	}

	overview.TotalRemaining = overview.TotalBudgeted.Sub(overview.TotalSpent)

	if overview.TotalBudgeted.IsPositive() {
		overview.OverallProgressPct = overview.TotalSpent.
			Div(overview.TotalBudgeted).
			Mul(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}

	return overview, nil
}
