// Package ledger implements the read-only aggregation view over the
// transaction store.
//
// Every query is a total function over possibly-empty input, absence of
// matching transactions yields zero values, never an error. Queries have
// no side effects and are safe to run concurrently and repeatedly.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GroupKey selects the transaction attribute that group sums are keyed by.
type GroupKey string

const (
	ByCategory      GroupKey = "category"
	ByMerchant      GroupKey = "merchant"
	ByPaymentMethod GroupKey = "paymentMethod"
)

// ParseGroupKey returns the GroupKey for a string. Unknown values fall
// back to ByCategory and are logged.
func ParseGroupKey(s string) GroupKey {
	switch GroupKey(s) {
	case ByCategory, ByMerchant, ByPaymentMethod:
		return GroupKey(s)
	}

	log.Debug().Str("groupBy", s).Msg("unknown group key, falling back to category")
	return ByCategory
}

// column returns the database column for the group key.
func (k GroupKey) column() string {
	if k == ByPaymentMethod {
		return "payment_method"
	}

	return string(k)
}

// Ledger aggregates over the transactions of a user.
type Ledger struct {
	db *gorm.DB
}

// New returns a Ledger reading from the database.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// KindSums are the transaction sums of a window, partitioned by kind.
type KindSums struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// GroupSum is the aggregate for one group of transactions.
type GroupSum struct {
	Key     string          `json:"key"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// SumByKind returns the summed income and expense amounts of a user
// for all transactions dated inside the window.
func (l *Ledger) SumByKind(ownerID uuid.UUID, w period.Window) (KindSums, error) {
	var rows []struct {
		Kind  models.TransactionKind `gorm:"column:kind"`
		Total decimal.Decimal        `gorm:"column:total"`
	}

	err := l.inWindow(ownerID, w).
		Select("kind, SUM(amount) AS total").
		Group("kind").
		Find(&rows).Error
	if err != nil {
		return KindSums{}, fmt.Errorf("summing transactions by kind failed: %w", err)
	}

	sums := KindSums{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Kind {
		case models.Income:
			sums.Income = row.Total
		case models.Expense:
			sums.Expense = row.Total
		}
	}

	return sums, nil
}

// SumByGroup returns the per-group aggregates of a user for all
// transactions dated inside the window, optionally restricted to one
// transaction kind.
//
// Groups are ordered by total descending. Ties are broken by key
// ascending so that repeated calls return identical orderings.
func (l *Ledger) SumByGroup(ownerID uuid.UUID, w period.Window, key GroupKey, kind *models.TransactionKind) ([]GroupSum, error) {
	var rows []struct {
		GroupKey string          `gorm:"column:group_key"`
		Total    decimal.Decimal `gorm:"column:total"`
		TxCount  int64           `gorm:"column:tx_count"`
	}

	column := key.column()

	q := l.inWindow(ownerID, w).
		Select(fmt.Sprintf("%s AS group_key, SUM(amount) AS total, COUNT(*) AS tx_count", column))

	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}

	err := q.Group(column).
		Order("total DESC, group_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing transactions by %s failed: %w", key, err)
	}

	sums := make([]GroupSum, 0, len(rows))
	for _, row := range rows {
		average := decimal.Zero
		if row.TxCount > 0 {
			average = row.Total.Div(decimal.NewFromInt(row.TxCount))
		}

		sums = append(sums, GroupSum{
			Key:     row.GroupKey,
			Total:   row.Total,
			Count:   row.TxCount,
			Average: average,
		})
	}

	return sums, nil
}

// CategoryExpenses returns the summed expense amount of a user for one
// category inside the window. This is the recompute behind every budget's
// spent cache.
func (l *Ledger) CategoryExpenses(ownerID uuid.UUID, category string, w period.Window) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := l.inWindow(ownerID, w).
		Select("SUM(amount)").
		Where("kind = ?", models.Expense).
		Where("category = ?", category).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for category %q failed: %w", category, err)
	}

	// If no transactions are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// inWindow scopes a transaction query to one user and window. Both window
// ends are inclusive.
func (l *Ledger) inWindow(ownerID uuid.UUID, w period.Window) *gorm.DB {
	return l.db.Model(&models.Transaction{}).
		Where("owner_id = ?", ownerID).
		Where("date >= ? AND date <= ?", w.Start, w.End)
}
