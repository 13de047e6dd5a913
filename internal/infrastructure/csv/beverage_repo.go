package csv

import (
	"context"
	"strconv"
	"strings"

	"courtledger/internal/domain/beverage"
	apperrors "courtledger/internal/shared/errors"
)

// WaterItemRepository implements beverage.ItemRepository over the inventory
// file. Item names are the natural key, matched case-insensitively.
type WaterItemRepository struct {
	store *Store
}

func NewWaterItemRepository(store *Store) *WaterItemRepository {
	return &WaterItemRepository{store: store}
}

func waterItemRow(it *beverage.WaterItem) []string {
	return []string{
		sanitizeName(it.Name),
		strconv.Itoa(it.Stock),
		strconv.FormatInt(it.UnitPrice, 10),
	}
}

func (r *WaterItemRepository) List(ctx context.Context) ([]*beverage.WaterItem, error) {
	if err := r.store.EnsureSchema(EntityWaterItems); err != nil {
		return nil, err
	}
	rows, err := readRows(r.store.Path(EntityWaterItems))
	if err != nil {
		return nil, err
	}
	var items []*beverage.WaterItem
	if len(rows) < 2 {
		return items, nil
	}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		it := &beverage.WaterItem{Name: row[0]}
		it.Stock, _ = strconv.Atoi(row[1])
		it.UnitPrice, _ = strconv.ParseInt(row[2], 10, 64)
		items = append(items, it)
	}
	return items, nil
}

func (r *WaterItemRepository) Find(ctx context.Context, name string) (*beverage.WaterItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if beverage.SameName(it.Name, name) {
			return it, nil
		}
	}
	return nil, nil
}

func (r *WaterItemRepository) ApplyDelta(ctx context.Context, name string, quantityDelta int, unitPrice int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("item name must not be empty")
	}
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		if !beverage.SameName(it.Name, name) {
			continue
		}
		next := it.Stock + quantityDelta
		if next < 0 {
			return apperrors.NewValidationError("stock would go negative", it.Name)
		}
		it.Stock = next
		it.UnitPrice = unitPrice
		return r.rewriteItems(items)
	}
	if quantityDelta < 0 {
		return apperrors.NewNotFoundError("no such beverage item", name)
	}
	items = append(items, &beverage.WaterItem{Name: name, Stock: quantityDelta, UnitPrice: unitPrice})
	return r.rewriteItems(items)
}

func (r *WaterItemRepository) Rename(ctx context.Context, oldName, newName string, unitPrice int64) (bool, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false, apperrors.NewValidationError("item name must not be empty")
	}
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	if !beverage.SameName(oldName, newName) {
		for _, it := range items {
			if beverage.SameName(it.Name, newName) {
				return false, apperrors.NewConflictError("an item with that name already exists", newName)
			}
		}
	}
	for _, it := range items {
		if beverage.SameName(it.Name, oldName) {
			it.Name = newName
			it.UnitPrice = unitPrice
			return true, r.rewriteItems(items)
		}
	}
	return false, nil
}

func (r *WaterItemRepository) Delete(ctx context.Context, name string) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	removed := false
	for _, it := range items {
		if !removed && beverage.SameName(it.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return false, nil
	}
	return true, r.rewriteItems(kept)
}

func (r *WaterItemRepository) rewriteItems(items []*beverage.WaterItem) error {
	rows := [][]string{Header(EntityWaterItems)}
	for _, it := range items {
		rows = append(rows, waterItemRow(it))
	}
	return r.store.rewriteAll(r.store.Path(EntityWaterItems), rows)
}

// WaterSaleRepository implements beverage.SaleRepository over the sales
// ledger file.
type WaterSaleRepository struct {
	store *Store
}

func NewWaterSaleRepository(store *Store) *WaterSaleRepository {
	return &WaterSaleRepository{store: store}
}

func waterSaleRow(s *beverage.WaterSale) []string {
	return []string{
		s.Date,
		sanitizeName(s.ItemName),
		strconv.Itoa(s.Quantity),
		strconv.FormatInt(s.UnitPrice, 10),
		strconv.FormatInt(s.LineTotal, 10),
		s.ID,
	}
}

func parseWaterSaleRow(row []string, idIdx int) *beverage.WaterSale {
	s := &beverage.WaterSale{Date: row[0], ItemName: row[1]}
	s.Quantity, _ = strconv.Atoi(row[2])
	s.UnitPrice, _ = strconv.ParseInt(row[3], 10, 64)
	if len(row) > 4 {
		s.LineTotal, _ = strconv.ParseInt(row[4], 10, 64)
	}
	if idIdx >= 0 && len(row) > idIdx {
		s.ID = row[idIdx]
	}
	return s
}

func (r *WaterSaleRepository) Append(ctx context.Context, sale *beverage.WaterSale) error {
	if err := r.store.EnsureSchema(EntityWaterSales); err != nil {
		return err
	}
	return r.store.appendRow(r.store.Path(EntityWaterSales), waterSaleRow(sale))
}

func (r *WaterSaleRepository) List(ctx context.Context) ([]*beverage.WaterSale, error) {
	if err := r.store.EnsureSchema(EntityWaterSales); err != nil {
		return nil, err
	}
	rows, err := readRows(r.store.Path(EntityWaterSales))
	if err != nil {
		return nil, err
	}
	var sales []*beverage.WaterSale
	if len(rows) < 2 {
		return sales, nil
	}
	idIdx := headerIndex(rows[0], "sale_id")
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		sales = append(sales, parseWaterSaleRow(row, idIdx))
	}
	return sales, nil
}

func (r *WaterSaleRepository) DeleteByID(ctx context.Context, saleID string) (*beverage.WaterSale, bool, error) {
	if saleID == "" {
		return nil, false, nil
	}
	return r.deleteWhere(func(row []string, idIdx int) bool {
		return idIdx >= 0 && len(row) > idIdx && row[idIdx] == saleID
	})
}

func (r *WaterSaleRepository) DeleteExact(ctx context.Context, date, name string, quantity int, unitPrice int64) (bool, error) {
	qty := strconv.Itoa(quantity)
	price := strconv.FormatInt(unitPrice, 10)
	_, ok, err := r.deleteWhere(func(row []string, idIdx int) bool {
		return row[0] == date && beverage.SameName(row[1], name) && row[2] == qty && row[3] == price
	})
	return ok, err
}

func (r *WaterSaleRepository) deleteWhere(match func(row []string, idIdx int) bool) (*beverage.WaterSale, bool, error) {
	if err := r.store.EnsureSchema(EntityWaterSales); err != nil {
		return nil, false, err
	}
	path := r.store.Path(EntityWaterSales)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return nil, false, err
	}
	idIdx := headerIndex(rows[0], "sale_id")
	newRows := rows[:1]
	var removed *beverage.WaterSale
	for _, row := range rows[1:] {
		if removed == nil && len(row) >= 4 && match(row, idIdx) {
			removed = parseWaterSaleRow(row, idIdx)
			continue
		}
		newRows = append(newRows, row)
	}
	if removed == nil {
		return nil, false, nil
	}
	if err := r.store.rewriteAll(path, newRows); err != nil {
		return nil, false, err
	}
	return removed, true, nil
}
