package finance

import "context"

// StatRepository is the storage contract for the monthly statistics ledger.
type StatRepository interface {
	// Append adds a ledger line; history for a month is retained.
	Append(ctx context.Context, stat *MonthlyStat) error
	// UpdateFirst rewrites the first row matching the month in place.
	UpdateFirst(ctx context.Context, stat *MonthlyStat) (bool, error)
	// DeleteMonth rewrites the file without any row for the month.
	DeleteMonth(ctx context.Context, month string) (bool, error)
	List(ctx context.Context) ([]*MonthlyStat, error)
}

// ShareEventRepository stores profit-distribution events.
type ShareEventRepository interface {
	Append(ctx context.Context, event *ShareEvent) error
	List(ctx context.Context) ([]*ShareEvent, error)
	Delete(ctx context.Context, eventID string) (bool, error)
}
