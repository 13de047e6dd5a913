package booking

import "context"

// Repository is the storage contract for booking records. Implementations
// own the in-memory cache and must invalidate it on every successful
// mutation so that GetAll reflects changes without a forced reload.
type Repository interface {
	// GetAll returns every booking, served from cache unless the cache is
	// dirty or forceReload is set.
	GetAll(ctx context.Context, forceReload bool) ([]*Booking, error)
	FindByID(ctx context.Context, recordID string) (*Booking, error)

	Append(ctx context.Context, b *Booking) error
	// Update rewrites the first row matching the old (date, court, slot,
	// price) tuple with the updated booking, keeping the stored record ID.
	Update(ctx context.Context, oldDate, oldCourt, oldSlot string, oldPrice int64, updated *Booking) (bool, error)
	DeleteByID(ctx context.Context, recordID string) (bool, error)
	// DeleteFirstMatch removes the first row matching date, court and slot;
	// price is compared only when the stored value parses as a number.
	// Returns the removed booking when one was found.
	DeleteFirstMatch(ctx context.Context, date, court, slot string, price int64) (*Booking, bool, error)

	// Invalidate marks the cache dirty, forcing the next read to hit disk.
	Invalidate()
}

// RawScan is the raw-row view the integrity checker needs: header shape and
// per-row identifier presence, untouched by the record parser.
type RawScan struct {
	TotalRows      int
	HasIDHeader    bool
	MissingIDCount int
}

// RawScanner is implemented by stores that can scan booking rows without
// going through the cache.
type RawScanner interface {
	ScanRaw(ctx context.Context) (*RawScan, error)
}
