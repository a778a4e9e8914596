// Package insight defines the optional collaborator that turns report
// payloads into free-text insights.
//
// The engine works without it: when no generator is configured or a
// generator fails, callers fall back to the deterministic budget
// recommendations.
package insight

import (
	"context"

	"github.com/pocketledger/backend/internal/report"
)

// Generator produces free-text insights for a financial summary and
// spending breakdown.
type Generator interface {
	Insights(ctx context.Context, summary report.Summary, breakdown report.Breakdown) (string, error)
}
