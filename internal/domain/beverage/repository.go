package beverage

import "context"

// ItemRepository is the storage contract for the beverage inventory.
type ItemRepository interface {
	List(ctx context.Context) ([]*WaterItem, error)
	Find(ctx context.Context, name string) (*WaterItem, error)

	// ApplyDelta merges a quantity delta into the named item, creating it
	// when absent (creation with a negative delta is rejected). The unit
	// price is updated to the given value on every call.
	ApplyDelta(ctx context.Context, name string, quantityDelta int, unitPrice int64) error
	// Rename changes name and/or unit price, keeping the stock quantity.
	Rename(ctx context.Context, oldName, newName string, unitPrice int64) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
}

// SaleRepository is the storage contract for the sales ledger.
type SaleRepository interface {
	Append(ctx context.Context, sale *WaterSale) error
	List(ctx context.Context) ([]*WaterSale, error)

	DeleteByID(ctx context.Context, saleID string) (*WaterSale, bool, error)
	// DeleteExact removes the first row matching the full
	// (date, name, quantity, unit price, line total) tuple.
	DeleteExact(ctx context.Context, date, name string, quantity int, unitPrice int64) (bool, error)
}
