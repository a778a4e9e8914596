package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/budget"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/period"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.GET("", GetBudgets)
	r.POST("", CreateBudget)
	r.GET("/overview", GetBudgetOverview)
	r.GET("/recommendations", GetBudgetRecommendations)
	r.GET("/:id", GetBudget)
	r.PATCH("/:id", UpdateBudget)
	r.DELETE("/:id", DeleteBudget)
}

// BudgetEditable contains all values the budget entry flow can set.
// The threshold is a pointer so that an explicit zero, which disables
// threshold warnings, is distinguishable from an absent field.
type BudgetEditable struct {
	OwnerID           uuid.UUID       `json:"ownerId"`
	Category          string          `json:"category"`
	PeriodKind        string          `json:"periodKind"`
	WindowStart       types.Date      `json:"windowStart"`
	WindowEnd         types.Date      `json:"windowEnd"`
	AmountCap         decimal.Decimal `json:"amountCap"`
	AlertThresholdPct *int64          `json:"alertThresholdPct"`
}

// BudgetResponse is a budget with its derived attributes.
type BudgetResponse struct {
	models.Budget
	ProgressPct int64               `json:"progressPct"`
	Remaining   decimal.Decimal     `json:"remaining"`
	Status      models.BudgetStatus `json:"status"`
	Current     bool                `json:"current"`
}

func newBudgetResponse(b models.Budget) BudgetResponse {
	return BudgetResponse{
		Budget:      b,
		ProgressPct: b.ProgressPct(),
		Remaining:   b.Remaining(),
		Status:      b.Status(),
		Current:     b.Window().Contains(types.DateOf(time.Now())),
	}
}

func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	kind := period.ParseKind(editable.PeriodKind)

	// A budget without an explicit window covers the current period
	if editable.WindowStart.IsZero() || editable.WindowEnd.IsZero() {
		window := period.Resolve(kind, time.Now())
		editable.WindowStart = window.Start
		editable.WindowEnd = window.End
	}

	threshold := int64(budget.DefaultAlertThresholdPct)
	if editable.AlertThresholdPct != nil {
		threshold = *editable.AlertThresholdPct
	}

	created, err := newTracker().CreateBudget(models.Budget{
		OwnerID:           editable.OwnerID,
		Category:          editable.Category,
		PeriodKind:        kind,
		WindowStart:       editable.WindowStart,
		WindowEnd:         editable.WindowEnd,
		AmountCap:         editable.AmountCap,
		AlertThresholdPct: threshold,
	})
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": newBudgetResponse(created)})
}

func GetBudgets(c *gin.Context) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return
	}

	kind := period.ParseKind(c.DefaultQuery("periodKind", string(period.Monthly)))

	budgets, err := newTracker().Budgets(ownerID, kind)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	responses := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		responses = append(responses, newBudgetResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func GetBudget(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var b models.Budget
	err = models.DB.First(&b, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	err = newTracker().RefreshSpent(&b)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newBudgetResponse(b)})
}

func UpdateBudget(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var b models.Budget
	err = models.DB.First(&b, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	update := struct {
		AmountCap         *decimal.Decimal `json:"amountCap"`
		AlertThresholdPct *int64           `json:"alertThresholdPct"`
	}{}
	if err := httputil.BindData(c, &update); err != nil {
		return
	}

	if update.AmountCap != nil {
		b.AmountCap = *update.AmountCap
	}

	if update.AlertThresholdPct != nil {
		b.AlertThresholdPct = *update.AlertThresholdPct
	}

	err = models.DB.Save(&b).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	err = newTracker().RefreshSpent(&b)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newBudgetResponse(b)})
}

// DeleteBudget deactivates a budget. With ?permanent=true the budget is
// removed entirely.
func DeleteBudget(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	tracker := newTracker()

	if c.Query("permanent") == "true" {
		err = tracker.Delete(id)
	} else {
		err = tracker.Deactivate(id)
	}

	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func GetBudgetOverview(c *gin.Context) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return
	}

	kind := period.ParseKind(c.DefaultQuery("periodKind", string(period.Monthly)))

	overview, err := newTracker().Overview(ownerID, kind, time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func GetBudgetRecommendations(c *gin.Context) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return
	}

	recommendations, err := newTracker().Recommendations(ownerID, time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recommendations})
}
