// Package beverage wires the inventory and sales ledger together: restocks
// merge by name, sales are stock-guarded and priced from the inventory, and
// sale deletion re-credits stock.
package beverage

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"courtledger/internal/domain/beverage"
	"courtledger/internal/shared/biztime"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/logger"
)

// RestockInput creates or restocks one inventory item. A negative quantity
// adjusts an existing item's stock down; zero is rejected.
type RestockInput struct {
	Name      string `validate:"required"`
	Quantity  int    `validate:"ne=0"`
	UnitPrice int64  `validate:"min=0"`
}

// SaleInput records one sale. The price comes from the inventory, never the
// caller.
type SaleInput struct {
	Date     string `validate:"required"`
	ItemName string `validate:"required"`
	Quantity int    `validate:"min=1"`
}

type Service struct {
	items    beverage.ItemRepository
	sales    beverage.SaleRepository
	validate *validator.Validate
	log      logger.Interface
}

func NewService(items beverage.ItemRepository, sales beverage.SaleRepository, log logger.Interface) *Service {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Service{
		items:    items,
		sales:    sales,
		validate: validator.New(),
		log:      log.Named("beverage.service"),
	}
}

func (s *Service) ListItems(ctx context.Context) ([]*beverage.WaterItem, error) {
	return s.items.List(ctx)
}

func (s *Service) FindItem(ctx context.Context, name string) (*beverage.WaterItem, error) {
	return s.items.Find(ctx, name)
}

// Restock applies the quantity delta to the named item, creating it when the
// delta is positive and the item absent. The unit price is updated to the
// given value either way.
func (s *Service) Restock(ctx context.Context, in RestockInput) error {
	if err := s.validate.Struct(in); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.items.ApplyDelta(ctx, in.Name, in.Quantity, in.UnitPrice); err != nil {
		return err
	}
	s.log.Info("item restocked", "name", in.Name, "quantity", in.Quantity)
	return nil
}

// RenameItem changes an item's name and/or unit price, keeping its stock.
func (s *Service) RenameItem(ctx context.Context, oldName, newName string, unitPrice int64) (bool, error) {
	return s.items.Rename(ctx, oldName, newName, unitPrice)
}

// DeleteItem removes the item outright; its past sale rows stay in the
// ledger.
func (s *Service) DeleteItem(ctx context.Context, name string) (bool, error) {
	return s.items.Delete(ctx, name)
}

// RecordSale checks stock, decrements it and appends a ledger row priced at
// the item's current unit price.
func (s *Service) RecordSale(ctx context.Context, in SaleInput) (*beverage.WaterSale, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	item, err := s.items.Find(ctx, in.ItemName)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NewNotFoundError("no such beverage item", in.ItemName)
	}
	if in.Quantity > item.Stock {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("only %d of %q in stock, cannot sell %d", item.Stock, item.Name, in.Quantity))
	}
	sale, err := beverage.NewWaterSale(in.Date, item.Name, in.Quantity, item.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.items.ApplyDelta(ctx, item.Name, -in.Quantity, item.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.sales.Append(ctx, sale); err != nil {
		// put the stock back so a failed append does not lose inventory
		if restoreErr := s.items.ApplyDelta(ctx, item.Name, in.Quantity, item.UnitPrice); restoreErr != nil {
			s.log.Error("stock restore after failed sale append", "name", item.Name, "error", restoreErr)
		}
		return nil, err
	}
	s.log.Info("sale recorded", "sale_id", sale.ID, "name", sale.ItemName, "quantity", sale.Quantity)
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]*beverage.WaterSale, error) {
	return s.sales.List(ctx)
}

// SalesForMonth filters the ledger to one YYYY-MM month.
func (s *Service) SalesForMonth(ctx context.Context, month string) ([]*beverage.WaterSale, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	all, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*beverage.WaterSale
	for _, sale := range all {
		if biztime.MonthOf(sale.Date) == month {
			out = append(out, sale)
		}
	}
	return out, nil
}

// DaySales filters the ledger to one date.
func (s *Service) DaySales(ctx context.Context, date string) ([]*beverage.WaterSale, error) {
	all, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*beverage.WaterSale
	for _, sale := range all {
		if sale.Date == date {
			out = append(out, sale)
		}
	}
	return out, nil
}

// SaleAggregate is one item's combined sales for a day.
type SaleAggregate struct {
	ItemName  string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// AggregateDaySales groups one day's ledger rows by item name, in first-seen
// order. The unit price shown is the first row's; totals sum what each row
// actually charged.
func (s *Service) AggregateDaySales(ctx context.Context, date string) ([]SaleAggregate, error) {
	sales, err := s.DaySales(ctx, date)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var out []SaleAggregate
	for _, sale := range sales {
		i, seen := index[sale.ItemName]
		if !seen {
			index[sale.ItemName] = len(out)
			out = append(out, SaleAggregate{ItemName: sale.ItemName, UnitPrice: sale.UnitPrice})
			i = len(out) - 1
		}
		out[i].Quantity += sale.Quantity
		out[i].Total += sale.LineTotal
	}
	return out, nil
}

// MonthSalesTotal sums the ledger for one month.
func (s *Service) MonthSalesTotal(ctx context.Context, month string) (int64, error) {
	sales, err := s.SalesForMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, sale := range sales {
		total += sale.LineTotal
	}
	return total, nil
}

// DeleteSaleByID removes one ledger row and re-credits the item's stock.
func (s *Service) DeleteSaleByID(ctx context.Context, saleID string) (bool, error) {
	removed, ok, err := s.sales.DeleteByID(ctx, saleID)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.recredit(ctx, removed.ItemName, removed.Quantity, removed.UnitPrice)
}

// DeleteSaleExact removes the first ledger row matching the full natural
// tuple and re-credits the item's stock. Kept for callers without the sale
// ID.
func (s *Service) DeleteSaleExact(ctx context.Context, date, name string, quantity int, unitPrice int64) (bool, error) {
	ok, err := s.sales.DeleteExact(ctx, date, name, quantity, unitPrice)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.recredit(ctx, name, quantity, unitPrice)
}

// recredit puts a deleted sale's quantity back into stock. A sale for an
// item deleted from the inventory since is logged and otherwise dropped.
func (s *Service) recredit(ctx context.Context, name string, quantity int, unitPrice int64) error {
	item, err := s.items.Find(ctx, name)
	if err != nil {
		return err
	}
	if item == nil {
		s.log.Warn("deleted sale references missing item, stock not re-credited", "name", name)
		return nil
	}
	return s.items.ApplyDelta(ctx, item.Name, quantity, item.UnitPrice)
}
