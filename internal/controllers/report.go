package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/period"
	"github.com/rs/zerolog/log"
)

// RegisterReportRoutes registers the routes for reports with the
// RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.GET("/summary", GetFinancialSummary)
	r.GET("/spending", GetSpendingBreakdown)
	r.GET("/income", GetIncomeSources)
	r.GET("/trends", GetTrends)
	r.GET("/cashflow", GetCashFlow)
	r.GET("/performance", GetBudgetPerformance)
	r.GET("/networth", GetNetWorthProxy)
	r.GET("/insights", GetInsights)
}

// reportScope parses the parameters every report shares.
func reportScope(c *gin.Context) (uuid.UUID, period.Kind, bool) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return uuid.Nil, period.Monthly, false
	}

	return ownerID, period.ParseKind(c.DefaultQuery("periodKind", string(period.Monthly))), true
}

// periodCount parses the n query parameter for series reports.
func periodCount(c *gin.Context, fallback int) int {
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(fallback)))
	if err != nil || n < 1 {
		return fallback
	}

	return n
}

func GetFinancialSummary(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	summary, err := newEngine().FinancialSummary(ownerID, period.Resolve(kind, time.Now()))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func GetSpendingBreakdown(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	groupBy := ledger.ParseGroupKey(c.DefaultQuery("groupBy", string(ledger.ByCategory)))

	breakdown, err := newEngine().SpendingBreakdown(ownerID, period.Resolve(kind, time.Now()), groupBy)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": breakdown})
}

func GetIncomeSources(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	sources, err := newEngine().IncomeSources(ownerID, period.Resolve(kind, time.Now()))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sources})
}

func GetTrends(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	trends, err := newEngine().Trends(ownerID, kind, periodCount(c, 12), time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trends})
}

func GetCashFlow(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	flow, err := newEngine().CashFlow(ownerID, kind, periodCount(c, 6), time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": flow})
}

func GetBudgetPerformance(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	performance, err := newEngine().BudgetPerformance(ownerID, kind, time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": performance})
}

func GetNetWorthProxy(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	proxy, err := newEngine().NetWorthProxy(ownerID, kind, periodCount(c, 12), time.Now())
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": proxy})
}

// GetInsights returns free text from the generative backend when one is
// configured and reachable. Otherwise it falls back to the deterministic
// budget recommendations, the report never fails because the backend is
// absent.
func GetInsights(c *gin.Context) {
	ownerID, kind, ok := reportScope(c)
	if !ok {
		return
	}

	now := time.Now()
	window := period.Resolve(kind, now)
	engine := newEngine()

	summary, err := engine.FinancialSummary(ownerID, window)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	breakdown, err := engine.SpendingBreakdown(ownerID, window, ledger.ByCategory)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if InsightGenerator != nil {
		text, err := InsightGenerator.Insights(c.Request.Context(), summary, breakdown)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"source": "generated", "insights": text}})
			return
		}

		log.Warn().Err(err).
			Str("request-id", requestid.Get(c)).
			Msg("insight backend failed, falling back to recommendations")
	}

	recommendations, err := newTracker().Recommendations(ownerID, now)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"source": "recommendations", "recommendations": recommendations}})
}
