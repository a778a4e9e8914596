package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/shopspring/decimal"
)

// RecommendationType distinguishes proposals for new budgets from cap
// increases on existing ones.
type RecommendationType string

const (
	RecommendCreate   RecommendationType = "create_budget"
	RecommendIncrease RecommendationType = "increase_budget"
)

const (
	// Categories with a smaller trailing monthly average are not worth
	// budgeting.
	recommendMinMonthlyAvg = 50

	// Trailing averages above this make a new budget high priority.
	recommendHighPriorityAvg = 200
)

// trailingPeriods is the number of monthly windows the averages are
// computed over.
const trailingPeriods = 3

// Recommendation is a deterministic budget proposal derived from
// trailing spending. It needs no generative backend and is always
// available.
type Recommendation struct {
	Type            RecommendationType `json:"type"`
	Category        string             `json:"category"`
	CurrentAmount   decimal.Decimal    `json:"currentAmount"`
	SuggestedAmount decimal.Decimal    `json:"suggestedAmount"`
	Reason          string             `json:"reason"`
	Priority        string             `json:"priority"`
}

// Recommendations proposes budget adjustments from the trailing
// three-month average expense per category.
//
// Categories without an active budget whose average exceeds the minimum
// get a proposed cap of ceil(avg * 1.1). Categories whose average
// exceeds 90% of their active budget's cap get a proposed raise to the
// same ceiling.
func (t *Tracker) Recommendations(ownerID uuid.UUID, ref time.Time) ([]Recommendation, error) {
	windows := period.LastN(period.Monthly, ref, trailingPeriods)
	trailing := period.Window{Start: windows[0].Start, End: windows[trailingPeriods-1].End}

	kind := models.Expense
	sums, err := t.ledger.SumByGroup(ownerID, trailing, ledger.ByCategory, &kind)
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	err = t.db.
		Where("owner_id = ? AND active = ?", ownerID, true).
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	budgeted := make(map[string]models.Budget, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = b
	}

	minAvg := decimal.NewFromInt(recommendMinMonthlyAvg)
	highPriorityAvg := decimal.NewFromInt(recommendHighPriorityAvg)
	buffer := decimal.NewFromFloat(1.1)
	periods := decimal.NewFromInt(trailingPeriods)

	recommendations := make([]Recommendation, 0)
	for _, sum := range sums {
		avg := sum.Total.Div(periods)
		suggested := avg.Mul(buffer).Ceil()

		existing, hasBudget := budgeted[sum.Key]
		if !hasBudget {
			if avg.LessThanOrEqual(minAvg) {
				continue
			}

			priority := "medium"
			if avg.GreaterThan(highPriorityAvg) {
				priority = "high"
			}

			recommendations = append(recommendations, Recommendation{
				Type:            RecommendCreate,
				Category:        sum.Key,
				SuggestedAmount: suggested,
				Reason:          fmt.Sprintf("You spent an average of $%s monthly on %s", avg.StringFixed(2), sum.Key),
				Priority:        priority,
			})

			continue
		}

		if avg.GreaterThan(existing.AmountCap.Mul(decimal.NewFromFloat(0.9))) {
			recommendations = append(recommendations, Recommendation{
				Type:            RecommendIncrease,
				Category:        sum.Key,
				CurrentAmount:   existing.AmountCap,
				SuggestedAmount: suggested,
				Reason:          "Your spending exceeds 90% of your current budget",
				Priority:        "medium",
			})
		}
	}

	return recommendations, nil
}
