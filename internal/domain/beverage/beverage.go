// Package beverage holds the water inventory and the sales ledger.
package beverage

import (
	"strings"

	"courtledger/internal/shared/biztime"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/id"
)

// WaterItem is one beverage SKU. Names are unique case-insensitively.
type WaterItem struct {
	Name      string
	Stock     int
	UnitPrice int64
}

// WaterSale is one sale transaction line. LineTotal is fixed at sale time
// from the item's then-current unit price.
type WaterSale struct {
	ID        string
	Date      string // ISO YYYY-MM-DD
	ItemName  string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// SameName compares item names the way the inventory does: trimmed,
// case-insensitive.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NewWaterSale validates and prices one sale line.
func NewWaterSale(date, itemName string, quantity int, unitPrice int64) (*WaterSale, error) {
	if err := biztime.ValidateDate(date); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, apperrors.NewValidationError("item name must not be empty")
	}
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("sale quantity must be positive")
	}
	return &WaterSale{
		ID:        id.NewWaterSaleID(),
		Date:      date,
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: int64(quantity) * unitPrice,
	}, nil
}
