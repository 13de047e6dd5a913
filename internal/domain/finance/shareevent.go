package finance

import (
	"fmt"
	"time"

	"courtledger/internal/shared/biztime"
)

// ShareEvent records one profit-distribution calculation over an arbitrary
// set of months. Append-only; deletion is by event ID.
type ShareEvent struct {
	EventID      string // millisecond timestamp at creation
	Scope        string // human label of the months covered
	TotalRevenue int64
	TotalCost    int64
	Profit       int64
	Summary      string // per-partner breakdown, human readable
	CreatedAt    string
}

// NewShareEvent stamps a share event with a millisecond event ID.
func NewShareEvent(scope string, totalRevenue, totalCost, profit int64, summary string) *ShareEvent {
	return &ShareEvent{
		EventID:      fmt.Sprintf("%d", time.Now().UnixMilli()),
		Scope:        scope,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		Profit:       profit,
		Summary:      summary,
		CreatedAt:    biztime.Now(),
	}
}
