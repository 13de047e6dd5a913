package csv

import (
	"context"
	"strconv"

	"courtledger/internal/domain/finance"
)

// StatRepository implements finance.StatRepository over the monthly stats
// file. The file is a ledger: multiple rows per month are kept as history,
// with the newest row being the current value.
type StatRepository struct {
	store *Store
}

func NewStatRepository(store *Store) *StatRepository {
	return &StatRepository{store: store}
}

func statRow(s *finance.MonthlyStat) []string {
	auto := "0"
	if s.AutoComputed {
		auto = "1"
	}
	return []string{
		s.Month,
		strconv.FormatInt(s.TotalRevenue, 10),
		strconv.FormatInt(s.TotalCost, 10),
		sanitizeCell(s.CostReason),
		strconv.FormatInt(s.Profit, 10),
		auto,
	}
}

func parseStatRow(row []string) *finance.MonthlyStat {
	s := &finance.MonthlyStat{Month: row[0]}
	s.TotalRevenue, _ = strconv.ParseInt(row[1], 10, 64)
	s.TotalCost, _ = strconv.ParseInt(row[2], 10, 64)
	if len(row) > 3 {
		s.CostReason = row[3]
	}
	if len(row) > 4 {
		s.Profit, _ = strconv.ParseInt(row[4], 10, 64)
	}
	if len(row) > 5 {
		s.AutoComputed = row[5] == "1"
	}
	return s
}

func (r *StatRepository) Append(ctx context.Context, stat *finance.MonthlyStat) error {
	if err := r.store.EnsureSchema(EntityMonthlyStats); err != nil {
		return err
	}
	return r.store.appendRow(r.store.Path(EntityMonthlyStats), statRow(stat))
}

func (r *StatRepository) UpdateFirst(ctx context.Context, stat *finance.MonthlyStat) (bool, error) {
	if err := r.store.EnsureSchema(EntityMonthlyStats); err != nil {
		return false, err
	}
	path := r.store.Path(EntityMonthlyStats)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	changed := false
	for i, row := range rows[1:] {
		if changed || len(row) < 3 || row[0] != stat.Month {
			continue
		}
		rows[i+1] = statRow(stat)
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, r.store.rewriteAll(path, rows)
}

func (r *StatRepository) DeleteMonth(ctx context.Context, month string) (bool, error) {
	if err := r.store.EnsureSchema(EntityMonthlyStats); err != nil {
		return false, err
	}
	path := r.store.Path(EntityMonthlyStats)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	newRows := rows[:1]
	removed := false
	for _, row := range rows[1:] {
		if len(row) >= 1 && row[0] == month {
			removed = true
			continue
		}
		newRows = append(newRows, row)
	}
	if !removed {
		return false, nil
	}
	return true, r.store.rewriteAll(path, newRows)
}

func (r *StatRepository) List(ctx context.Context) ([]*finance.MonthlyStat, error) {
	if err := r.store.EnsureSchema(EntityMonthlyStats); err != nil {
		return nil, err
	}
	rows, err := readRows(r.store.Path(EntityMonthlyStats))
	if err != nil {
		return nil, err
	}
	var stats []*finance.MonthlyStat
	if len(rows) < 2 {
		return stats, nil
	}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		stats = append(stats, parseStatRow(row))
	}
	return stats, nil
}

// ShareEventRepository implements finance.ShareEventRepository over the
// profit shares file.
type ShareEventRepository struct {
	store *Store
}

func NewShareEventRepository(store *Store) *ShareEventRepository {
	return &ShareEventRepository{store: store}
}

func shareEventRow(e *finance.ShareEvent) []string {
	return []string{
		e.EventID,
		sanitizeCell(e.Scope),
		strconv.FormatInt(e.TotalRevenue, 10),
		strconv.FormatInt(e.TotalCost, 10),
		strconv.FormatInt(e.Profit, 10),
		sanitizeCell(e.Summary),
		e.CreatedAt,
	}
}

func (r *ShareEventRepository) Append(ctx context.Context, event *finance.ShareEvent) error {
	if err := r.store.EnsureSchema(EntityProfitShares); err != nil {
		return err
	}
	return r.store.appendRow(r.store.Path(EntityProfitShares), shareEventRow(event))
}

func (r *ShareEventRepository) List(ctx context.Context) ([]*finance.ShareEvent, error) {
	if err := r.store.EnsureSchema(EntityProfitShares); err != nil {
		return nil, err
	}
	rows, err := readRows(r.store.Path(EntityProfitShares))
	if err != nil {
		return nil, err
	}
	var events []*finance.ShareEvent
	if len(rows) < 2 {
		return events, nil
	}
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		e := &finance.ShareEvent{EventID: row[0], Scope: row[1]}
		e.TotalRevenue, _ = strconv.ParseInt(row[2], 10, 64)
		e.TotalCost, _ = strconv.ParseInt(row[3], 10, 64)
		e.Profit, _ = strconv.ParseInt(row[4], 10, 64)
		if len(row) > 5 {
			e.Summary = row[5]
		}
		if len(row) > 6 {
			e.CreatedAt = row[6]
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *ShareEventRepository) Delete(ctx context.Context, eventID string) (bool, error) {
	if err := r.store.EnsureSchema(EntityProfitShares); err != nil {
		return false, err
	}
	path := r.store.Path(EntityProfitShares)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	newRows := rows[:1]
	removed := false
	for _, row := range rows[1:] {
		if !removed && len(row) >= 1 && row[0] == eventID {
			removed = true
			continue
		}
		newRows = append(newRows, row)
	}
	if !removed {
		return false, nil
	}
	return true, r.store.rewriteAll(path, newRows)
}
