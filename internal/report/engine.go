// Package report builds financial reports from the ledger.
//
// The engine always pulls fresh aggregates, nothing pushes data into it.
// Absence of data yields zeroed or empty structures, never an error.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Engine computes reports for one transaction store.
type Engine struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// New returns a report engine reading from the database.
func New(db *gorm.DB, l *ledger.Ledger) *Engine {
	return &Engine{db: db, ledger: l}
}

// Summary is the income and expense summary of one window.
type Summary struct {
	Window         period.Window   `json:"window"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	SavingsRatePct decimal.Decimal `json:"savingsRatePct"`
}

// FinancialSummary sums income and expense transactions in the window.
// The savings rate is zero when there is no income, never a division
// error.
func (e *Engine) FinancialSummary(ownerID uuid.UUID, w period.Window) (Summary, error) {
	sums, err := e.ledger.SumByKind(ownerID, w)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Window:         w,
		TotalIncome:    sums.Income,
		TotalExpense:   sums.Expense,
		NetIncome:      sums.Income.Sub(sums.Expense),
		SavingsRatePct: decimal.Zero,
	}

	if summary.TotalIncome.IsPositive() {
		summary.SavingsRatePct = summary.NetIncome.
			Div(summary.TotalIncome).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return summary, nil
}

// BreakdownEntry is one group of a breakdown with its share of the
// total.
type BreakdownEntry struct {
	ledger.GroupSum
	Percentage decimal.Decimal `json:"percentage"`
}

// Breakdown groups one transaction kind by a group key.
type Breakdown struct {
	Window  period.Window    `json:"window"`
	GroupBy ledger.GroupKey  `json:"groupBy"`
	Total   decimal.Decimal  `json:"total"`
	Entries []BreakdownEntry `json:"entries"`
}

// SpendingBreakdown groups the window's expenses by the group key and
// adds each group's percentage of the summed expense total.
func (e *Engine) SpendingBreakdown(ownerID uuid.UUID, w period.Window, key ledger.GroupKey) (Breakdown, error) {
	return e.breakdown(ownerID, w, key, models.Expense)
}

// IncomeSources groups the window's income by category with each
// source's percentage of total income.
func (e *Engine) IncomeSources(ownerID uuid.UUID, w period.Window) (Breakdown, error) {
	return e.breakdown(ownerID, w, ledger.ByCategory, models.Income)
}

func (e *Engine) breakdown(ownerID uuid.UUID, w period.Window, key ledger.GroupKey, kind models.TransactionKind) (Breakdown, error) {
	sums, err := e.ledger.SumByGroup(ownerID, w, key, &kind)
	if err != nil {
		return Breakdown{}, err
	}

	breakdown := Breakdown{
		Window:  w,
		GroupBy: key,
		Total:   decimal.Zero,
		Entries: make([]BreakdownEntry, 0, len(sums)),
	}

	for _, sum := range sums {
		breakdown.Total = breakdown.Total.Add(sum.Total)
	}

	hundred := decimal.NewFromInt(100)
	for _, sum := range sums {
		percentage := decimal.Zero
		if breakdown.Total.IsPositive() {
			percentage = sum.Total.Div(breakdown.Total).Mul(hundred)
		}

		breakdown.Entries = append(breakdown.Entries, BreakdownEntry{
			GroupSum:   sum,
			Percentage: percentage,
		})
	}

	return breakdown, nil
}

// TrendPoint is the summary of one window in a trend series.
type TrendPoint struct {
	Label          string          `json:"label"`
	Window         period.Window   `json:"window"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Net            decimal.Decimal `json:"net"`
	SavingsRatePct decimal.Decimal `json:"savingsRatePct"`
}

// Trends summarizes the last n periods up to the reference instant,
// oldest first.
func (e *Engine) Trends(ownerID uuid.UUID, kind period.Kind, n int, ref time.Time) ([]TrendPoint, error) {
	windows := period.LastN(kind, ref, n)

	points := make([]TrendPoint, 0, len(windows))
	for _, w := range windows {
		summary, err := e.FinancialSummary(ownerID, w)
		if err != nil {
			return nil, err
		}

		points = append(points, TrendPoint{
			Label:          period.Label(kind, w),
			Window:         w,
			Income:         summary.TotalIncome,
			Expense:        summary.TotalExpense,
			Net:            summary.NetIncome,
			SavingsRatePct: summary.SavingsRatePct,
		})
	}

	return points, nil
}

// CashFlowPoint is one bucket of a cash flow series.
type CashFlowPoint struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlow buckets income and expenses of the last n periods for
// liquidity charting. Buckets are labelled by week or month depending on
// the period kind, oldest first.
func (e *Engine) CashFlow(ownerID uuid.UUID, kind period.Kind, n int, ref time.Time) ([]CashFlowPoint, error) {
	points, err := e.Trends(ownerID, kind, n, ref)
	if err != nil {
		return nil, err
	}

	flow := make([]CashFlowPoint, 0, len(points))
	for _, p := range points {
		flow = append(flow, CashFlowPoint{
			Label:   p.Label,
			Income:  p.Income,
			Expense: p.Expense,
			Net:     p.Net,
		})
	}

	return flow, nil
}

// PerformanceStatus rates one budget's window outcome.
type PerformanceStatus string

const (
	PerformanceGood    PerformanceStatus = "good"
	PerformanceWarning PerformanceStatus = "warning"
	PerformanceOver    PerformanceStatus = "over"
)

// PerformanceEntry compares one budget against actual spending.
//
// Adherence is the percentage of the cap left unspent and negative when
// the budget is overspent.
type PerformanceEntry struct {
	Category     string            `json:"category"`
	Budgeted     decimal.Decimal   `json:"budgeted"`
	Spent        decimal.Decimal   `json:"spent"`
	Variance     decimal.Decimal   `json:"variance"`
	AdherencePct decimal.Decimal   `json:"adherencePct"`
	Status       PerformanceStatus `json:"status"`
}

// Performance is the budget-vs-actual report of one window.
type Performance struct {
	Window              period.Window      `json:"window"`
	TotalBudgeted       decimal.Decimal    `json:"totalBudgeted"`
	TotalSpent          decimal.Decimal    `json:"totalSpent"`
	TotalVariance       decimal.Decimal    `json:"totalVariance"`
	OverallAdherencePct decimal.Decimal    `json:"overallAdherencePct"`
	Categories          []PerformanceEntry `json:"categories"`
}

// BudgetPerformance compares every budget active in the resolved window
// against the actual expenses of its category.
//
// The total spent covers all expense categories of the window, budgeted
// or not, so the variance reflects real overall spending.
func (e *Engine) BudgetPerformance(ownerID uuid.UUID, kind period.Kind, ref time.Time) (Performance, error) {
	window := period.Resolve(kind, ref)

	var budgets []models.Budget
	err := e.db.
		Where("owner_id = ? AND active = ?", ownerID, true).
		Where("window_start <= ? AND window_end >= ?", window.End, window.Start).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		return Performance{}, err
	}

	expense := models.Expense
	actual, err := e.ledger.SumByGroup(ownerID, window, ledger.ByCategory, &expense)
	if err != nil {
		return Performance{}, err
	}

	spentByCategory := make(map[string]decimal.Decimal, len(actual))
	totalSpent := decimal.Zero
	for _, sum := range actual {
		spentByCategory[sum.Key] = sum.Total
		totalSpent = totalSpent.Add(sum.Total)
	}

	performance := Performance{
		Window:              window,
		TotalBudgeted:       decimal.Zero,
		TotalSpent:          totalSpent,
		OverallAdherencePct: decimal.Zero,
		Categories:          make([]PerformanceEntry, 0, len(budgets)),
	}

	hundred := decimal.NewFromInt(100)
	warningAdherence := decimal.NewFromInt(10)

	for _, b := range budgets {
		spent := spentByCategory[b.Category]

		entry := PerformanceEntry{
			Category:     b.Category,
			Budgeted:     b.AmountCap,
			Spent:        spent,
			Variance:     spent.Sub(b.AmountCap),
			AdherencePct: decimal.Zero,
		}

		if b.AmountCap.IsPositive() {
			entry.AdherencePct = b.AmountCap.Sub(spent).Div(b.AmountCap).Mul(hundred)
		}

		switch {
		case entry.Variance.IsPositive():
			entry.Status = PerformanceOver
		case entry.AdherencePct.LessThan(warningAdherence):
			entry.Status = PerformanceWarning
		default:
			entry.Status = PerformanceGood
		}

		performance.TotalBudgeted = performance.TotalBudgeted.Add(b.AmountCap)
		performance.Categories = append(performance.Categories, entry)
	}

	performance.TotalVariance = performance.TotalSpent.Sub(performance.TotalBudgeted)
	if performance.TotalBudgeted.IsPositive() {
		performance.OverallAdherencePct = performance.TotalBudgeted.
			Sub(performance.TotalSpent).
			Div(performance.TotalBudgeted).
			Mul(hundred)
	}

	return performance, nil
}

// NetWorthPoint is one window of the net worth proxy series.
type NetWorthPoint struct {
	Label         string          `json:"label"`
	Net           decimal.Decimal `json:"net"`
	CumulativeNet decimal.Decimal `json:"cumulativeNet"`
}

// NetWorthProxy is the cumulative net income series.
//
// This is an explicit proxy, not true net worth: no assets or
// liabilities are tracked, the series only shows how cash accumulated
// over the trend windows.
type NetWorthProxy struct {
	Points     []NetWorthPoint `json:"points"`
	TotalNet   decimal.Decimal `json:"totalNet"`
	AverageNet decimal.Decimal `json:"averageNet"`
	Trend      string          `json:"trend"`
}

// NetWorthProxy accumulates the net of the last n periods, oldest first.
func (e *Engine) NetWorthProxy(ownerID uuid.UUID, kind period.Kind, n int, ref time.Time) (NetWorthProxy, error) {
	points, err := e.Trends(ownerID, kind, n, ref)
	if err != nil {
		return NetWorthProxy{}, err
	}

	proxy := NetWorthProxy{
		Points:     make([]NetWorthPoint, 0, len(points)),
		TotalNet:   decimal.Zero,
		AverageNet: decimal.Zero,
		Trend:      "negative",
	}

	cumulative := decimal.Zero
	for _, p := range points {
		cumulative = cumulative.Add(p.Net)
		proxy.Points = append(proxy.Points, NetWorthPoint{
			Label:         p.Label,
			Net:           p.Net,
			CumulativeNet: cumulative,
		})
	}

	proxy.TotalNet = cumulative
	if len(proxy.Points) > 0 {
		proxy.AverageNet = cumulative.Div(decimal.NewFromInt(int64(len(proxy.Points))))
	}

	if cumulative.IsPositive() {
		proxy.Trend = "positive"
	}

	return proxy, nil
}
