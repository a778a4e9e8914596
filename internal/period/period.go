// Package period resolves calendar periods into date windows.
//
// All functions are pure computations over a reference instant. Windows are
// closed intervals, both the start and the end day belong to the period.
package period

import (
	"fmt"
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// Kind is the calendar period a budget or report covers.
type Kind string

const (
	Weekly    Kind = "weekly"
	Monthly   Kind = "monthly"
	Quarterly Kind = "quarterly"
	Yearly    Kind = "yearly"
)

// Valid reports whether the kind is one of the known period kinds.
func (k Kind) Valid() bool {
	switch k {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}

	return false
}

// ParseKind returns the Kind for a string. Unknown values fall back to
// Monthly. The fallback mirrors what callers expect from the dashboard
// and is logged so that buggy callers can be found.
func ParseKind(s string) Kind {
	k := Kind(s)
	if !k.Valid() {
		log.Debug().Str("kind", s).Msg("unknown period kind, falling back to monthly")
		return Monthly
	}

	return k
}

// Window is a closed date interval. A transaction dated on Start or End
// belongs to the window.
type Window struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

// Contains reports whether the date is inside the window.
func (w Window) Contains(d types.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Overlaps reports whether two windows share at least one day.
func (w Window) Overlaps(o Window) bool {
	return !w.Start.After(o.End) && !w.End.Before(o.Start)
}

// Resolve returns the window of the period containing the reference instant.
// Unknown kinds resolve as Monthly, see ParseKind.
func Resolve(kind Kind, ref time.Time) Window {
	ref = ref.UTC()
	year, month, day := ref.Date()

	switch kind {
	case Weekly:
		// Weeks start on Sunday
		start := types.NewDate(year, month, day-int(ref.Weekday()))
		return Window{Start: start, End: start.AddDate(0, 0, 6)}
	case Quarterly:
		quarter := (int(month) - 1) / 3
		start := types.NewDate(year, time.Month(quarter*3+1), 1)
		return Window{Start: start, End: start.AddDate(0, 3, -1)}
	case Yearly:
		return Window{
			Start: types.NewDate(year, time.January, 1),
			End:   types.NewDate(year, time.December, 31),
		}
	default:
		if kind != Monthly {
			log.Debug().Str("kind", string(kind)).Msg("unknown period kind, resolving as monthly")
		}

		start := types.NewDate(year, month, 1)
		return Window{Start: start, End: start.AddDate(0, 1, -1)}
	}
}

// LastN returns the windows of the n consecutive periods up to and including
// the one containing the reference instant, oldest first. Adjacent windows
// are contiguous, the day after one window's end is the next window's start.
func LastN(kind Kind, ref time.Time, n int) []Window {
	windows := make([]Window, 0, n)
	if n <= 0 {
		return windows
	}

	current := Resolve(kind, ref)
	windows = append(windows, current)

	for i := 1; i < n; i++ {
		previous := Resolve(kind, current.Start.AddDate(0, 0, -1).Time())
		windows = append([]Window{previous}, windows...)
		current = previous
	}

	return windows
}

// Label returns the label used for a window in trend and cash flow series.
func Label(kind Kind, w Window) string {
	start := w.Start.Time()

	switch kind {
	case Weekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case Yearly:
		return fmt.Sprintf("%04d", start.Year())
	default:
		return start.Format("2006-01")
	}
}
