// Package controllers implements the HTTP handlers. They are thin glue,
// all aggregation and tracking logic lives in the engine packages.
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/budget"
	"github.com/pocketledger/backend/internal/insight"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/report"
)

// Notifier receives the alert events fired by transaction writes.
// Set by main, may be nil.
var Notifier budget.Notifier

// InsightGenerator is the optional generative backend for the insights
// endpoint. Set by main, may be nil.
var InsightGenerator insight.Generator

// Register registers all routes with the router group.
func Register(r *gin.RouterGroup) {
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterBudgetRoutes(r.Group("/budgets"))
	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterReportRoutes(r.Group("/reports"))
}

func newLedger() *ledger.Ledger {
	return ledger.New(models.DB)
}

func newTracker() *budget.Tracker {
	return budget.New(models.DB, newLedger(), Notifier)
}

func newEngine() *report.Engine {
	return report.New(models.DB, newLedger())
}
