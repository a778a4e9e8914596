package period_test

import (
	"testing"
	"time"

	"github.com/pocketledger/backend/internal/period"
	"github.com/pocketledger/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) types.Date {
	return types.NewDate(year, month, day)
}

func TestResolve(t *testing.T) {
	// A Tuesday
	ref := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		kind  period.Kind
		start types.Date
		end   types.Date
	}{
		{period.Weekly, date(2025, 6, 8), date(2025, 6, 14)},
		{period.Monthly, date(2025, 6, 1), date(2025, 6, 30)},
		{period.Quarterly, date(2025, 4, 1), date(2025, 6, 30)},
		{period.Yearly, date(2025, 1, 1), date(2025, 12, 31)},
		{period.Kind("fortnightly"), date(2025, 6, 1), date(2025, 6, 30)},
	}

	for _, tt := range tests {
		w := period.Resolve(tt.kind, ref)
		assert.Equal(t, tt.start, w.Start, "start for %s", tt.kind)
		assert.Equal(t, tt.end, w.End, "end for %s", tt.kind)
		assert.False(t, w.Start.After(w.End), "start must not be after end for %s", tt.kind)
	}
}

func TestResolveWeeklyOnSunday(t *testing.T) {
	// Reference on a Sunday starts the week on that day
	w := period.Resolve(period.Weekly, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2025, 6, 8), w.Start)
	assert.Equal(t, date(2025, 6, 14), w.End)
}

func TestResolveMonthlyYearBoundaries(t *testing.T) {
	w := period.Resolve(period.Monthly, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2025, 1, 1), w.Start)
	assert.Equal(t, date(2025, 1, 31), w.End)

	w = period.Resolve(period.Monthly, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 2, 29), w.End, "leap year February ends on the 29th")
}

func TestLastN(t *testing.T) {
	ref := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, kind := range []period.Kind{period.Weekly, period.Monthly, period.Quarterly, period.Yearly} {
		windows := period.LastN(kind, ref, 6)
		assert.Len(t, windows, 6)

		for i, w := range windows {
			assert.False(t, w.Start.After(w.End), "start must not be after end for %s", kind)

			if i == 0 {
				continue
			}

			previous := windows[i-1]
			assert.Equal(t, previous.End.AddDate(0, 0, 1), w.Start,
				"windows for %s must be contiguous", kind)
		}

		// The newest window is the one containing the reference instant
		assert.True(t, windows[5].Contains(types.DateOf(ref)))
	}
}

func TestLastNCrossesYearBoundary(t *testing.T) {
	windows := period.LastN(period.Monthly, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), 4)

	assert.Equal(t, date(2024, 11, 1), windows[0].Start)
	assert.Equal(t, date(2025, 2, 1), windows[3].Start)
}

func TestLastNZero(t *testing.T) {
	assert.Empty(t, period.LastN(period.Monthly, time.Now(), 0))
}

func TestWindowOverlaps(t *testing.T) {
	june := period.Window{Start: date(2025, 6, 1), End: date(2025, 6, 30)}

	tests := []struct {
		other    period.Window
		overlaps bool
	}{
		{period.Window{Start: date(2025, 6, 15), End: date(2025, 7, 15)}, true},
		{period.Window{Start: date(2025, 5, 1), End: date(2025, 6, 1)}, true},
		{period.Window{Start: date(2025, 6, 30), End: date(2025, 6, 30)}, true},
		{period.Window{Start: date(2025, 7, 1), End: date(2025, 7, 31)}, false},
		{period.Window{Start: date(2025, 5, 1), End: date(2025, 5, 31)}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.overlaps, june.Overlaps(tt.other), "%v", tt.other)
		assert.Equal(t, tt.overlaps, tt.other.Overlaps(june), "overlap must be symmetric")
	}
}

func TestWindowContains(t *testing.T) {
	w := period.Window{Start: date(2025, 6, 1), End: date(2025, 6, 30)}

	assert.True(t, w.Contains(date(2025, 6, 1)), "start day is inside the window")
	assert.True(t, w.Contains(date(2025, 6, 30)), "end day is inside the window")
	assert.False(t, w.Contains(date(2025, 5, 31)))
	assert.False(t, w.Contains(date(2025, 7, 1)))
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, period.Weekly, period.ParseKind("weekly"))
	assert.Equal(t, period.Yearly, period.ParseKind("yearly"))
	assert.Equal(t, period.Monthly, period.ParseKind("decennial"))
	assert.Equal(t, period.Monthly, period.ParseKind(""))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		kind period.Kind
		ref  time.Time
		want string
	}{
		{period.Monthly, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "2025-06"},
		{period.Weekly, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "2025-W23"},
		{period.Quarterly, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "2025-Q2"},
		{period.Yearly, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "2025"},
	}

	for _, tt := range tests {
		w := period.Resolve(tt.kind, tt.ref)
		assert.Equal(t, tt.want, period.Label(tt.kind, w))
	}
}
