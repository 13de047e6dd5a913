package csv

import (
	"slices"

	"courtledger/internal/shared/id"
)

// Current header schema per entity. Column order is load-bearing: readers
// and the export report rely on it.
var schemas = map[Entity][]string{
	EntityBookings:      {"date", "court", "time_slot", "price", "activity_type", "person_or_group", "record_id"},
	EntityMonthlyStats:  {"month", "total_revenue", "total_cost", "cost_reason", "profit", "auto_computed_flag"},
	EntitySubscriptions: {"month", "customer_name", "court", "sessions_per_week", "hours_per_session", "weekdays", "multiplier", "price", "notes", "sub_id"},
	EntityProfitShares:  {"event_id", "scope", "total_revenue", "total_cost", "profit", "summary", "created_at"},
	EntityWaterItems:    {"name", "stock_quantity", "unit_price"},
	EntityWaterSales:    {"date", "name", "quantity", "unit_price", "line_total", "sale_id"},
}

// Identifier columns get a fresh unique value per row when soft migration
// introduces them.
var idGenerators = map[string]func() string{
	"record_id": id.NewBookingID,
	"sub_id":    id.NewSubscriptionID,
	"sale_id":   id.NewWaterSaleID,
}

// Header returns the current schema of an entity.
func Header(entity Entity) []string {
	return slices.Clone(schemas[entity])
}

// EnsureSchema makes sure the entity file exists with the current header,
// migrating older header shapes forward without data loss. Idempotent: a
// file already at the current schema is left byte-identical. Migration
// failures are logged and swallowed (fail-open); the original file stays
// untouched because the rewrite is temp-file + rename.
func (s *Store) EnsureSchema(entity Entity) error {
	path := s.Path(entity)
	current := schemas[entity]

	rows, err := readRows(path)
	if err != nil {
		s.log.Warn("schema check failed, continuing with existing file",
			"entity", entity, "error", err)
		return nil
	}
	if rows == nil {
		return s.rewriteAll(path, [][]string{current})
	}
	if len(rows) == 0 {
		return s.rewriteAll(path, [][]string{current})
	}
	header := rows[0]
	if slices.Equal(header, current) {
		return nil
	}

	migrated := migrateRows(current, header, rows[1:])
	if err := s.rewriteAll(path, migrated); err != nil {
		s.log.Warn("schema migration failed, continuing with old schema",
			"entity", entity, "error", err)
	}
	return nil
}

// migrateRows realigns legacy rows to the current header by column name:
// surviving columns keep their values, new columns default to empty, and
// new identifier columns get generated values. Columns are never dropped
// by schema definitions, so no data is lost.
func migrateRows(current, oldHeader []string, dataRows [][]string) [][]string {
	colIndex := make(map[string]int, len(oldHeader))
	for i, name := range oldHeader {
		colIndex[name] = i
	}

	out := make([][]string, 0, len(dataRows)+1)
	out = append(out, slices.Clone(current))
	for _, row := range dataRows {
		newRow := make([]string, len(current))
		for i, col := range current {
			if oldIdx, ok := colIndex[col]; ok && oldIdx < len(row) {
				newRow[i] = row[oldIdx]
				continue
			}
			if gen, ok := idGenerators[col]; ok {
				newRow[i] = gen()
			}
		}
		out = append(out, newRow)
	}
	return out
}

// headerIndex returns the position of a column in a header row, -1 when absent.
func headerIndex(header []string, column string) int {
	for i, name := range header {
		if name == column {
			return i
		}
	}
	return -1
}
