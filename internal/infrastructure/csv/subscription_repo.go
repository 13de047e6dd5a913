package csv

import (
	"context"
	"strconv"

	"courtledger/internal/domain/subscription"
)

// SubscriptionRepository implements subscription.Repository over the
// subscriptions file.
type SubscriptionRepository struct {
	store *Store
}

func NewSubscriptionRepository(store *Store) *SubscriptionRepository {
	return &SubscriptionRepository{store: store}
}

func subscriptionRow(s *subscription.Subscription) []string {
	return []string{
		s.Month,
		sanitizeCell(s.CustomerName),
		s.Court,
		strconv.Itoa(s.SessionsPerWeek),
		s.HoursPerSession.String(),
		sanitizeCell(s.Weekdays),
		strconv.FormatFloat(s.Multiplier, 'f', 2, 64),
		strconv.FormatInt(s.Price, 10),
		sanitizeCell(s.Notes),
		s.ID,
	}
}

func parseSubscriptionRow(row []string, idIdx int) *subscription.Subscription {
	s := &subscription.Subscription{
		Month:        row[0],
		CustomerName: row[1],
		Court:        row[2],
	}
	s.SessionsPerWeek, _ = strconv.Atoi(row[3])
	if len(row) > 4 {
		if h, err := subscription.ParseSessionHours(row[4]); err == nil {
			s.HoursPerSession = h
		}
	}
	if len(row) > 5 {
		s.Weekdays = row[5]
	}
	if len(row) > 6 {
		s.Multiplier, _ = strconv.ParseFloat(row[6], 64)
	}
	if len(row) > 7 {
		s.Price, _ = strconv.ParseInt(row[7], 10, 64)
	}
	if len(row) > 8 {
		s.Notes = row[8]
	}
	if idIdx >= 0 && len(row) > idIdx {
		s.ID = row[idIdx]
	}
	return s
}

func (r *SubscriptionRepository) Append(ctx context.Context, sub *subscription.Subscription) error {
	if err := r.store.EnsureSchema(EntitySubscriptions); err != nil {
		return err
	}
	return r.store.appendRow(r.store.Path(EntitySubscriptions), subscriptionRow(sub))
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]*subscription.Subscription, error) {
	if err := r.store.EnsureSchema(EntitySubscriptions); err != nil {
		return nil, err
	}
	rows, err := readRows(r.store.Path(EntitySubscriptions))
	if err != nil {
		return nil, err
	}
	var subs []*subscription.Subscription
	if len(rows) < 2 {
		return subs, nil
	}
	idIdx := headerIndex(rows[0], "sub_id")
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		subs = append(subs, parseSubscriptionRow(row, idIdx))
	}
	return subs, nil
}

func (r *SubscriptionRepository) ListMonth(ctx context.Context, month string) ([]*subscription.Subscription, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var subs []*subscription.Subscription
	for _, s := range all {
		if s.Month == month {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, subID string) (*subscription.Subscription, error) {
	if subID == "" {
		return nil, nil
	}
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.ID == subID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepository) UpdateFirst(ctx context.Context, month, oldName string, updated *subscription.Subscription) (bool, error) {
	return r.updateWhere(func(row []string, idIdx int) bool {
		return row[0] == month && row[1] == oldName
	}, updated)
}

func (r *SubscriptionRepository) UpdateByID(ctx context.Context, subID string, updated *subscription.Subscription) (bool, error) {
	if subID == "" {
		return false, nil
	}
	return r.updateWhere(func(row []string, idIdx int) bool {
		return idIdx >= 0 && len(row) > idIdx && row[idIdx] == subID
	}, updated)
}

func (r *SubscriptionRepository) updateWhere(match func(row []string, idIdx int) bool, updated *subscription.Subscription) (bool, error) {
	if err := r.store.EnsureSchema(EntitySubscriptions); err != nil {
		return false, err
	}
	path := r.store.Path(EntitySubscriptions)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	idIdx := headerIndex(rows[0], "sub_id")
	changed := false
	for i, row := range rows[1:] {
		if changed || len(row) < 4 || !match(row, idIdx) {
			continue
		}
		newRow := subscriptionRow(updated)
		if idIdx >= 0 && len(row) > idIdx && row[idIdx] != "" {
			newRow[len(newRow)-1] = row[idIdx]
			updated.ID = row[idIdx]
		}
		rows[i+1] = newRow
		changed = true
	}
	if !changed {
		return false, nil
	}
	return true, r.store.rewriteAll(path, rows)
}

func (r *SubscriptionRepository) DeleteFirst(ctx context.Context, month, name string) (bool, error) {
	return r.deleteWhere(func(row []string, idIdx int) bool {
		return row[0] == month && row[1] == name
	})
}

func (r *SubscriptionRepository) DeleteByID(ctx context.Context, subID string) (bool, error) {
	if subID == "" {
		return false, nil
	}
	return r.deleteWhere(func(row []string, idIdx int) bool {
		return idIdx >= 0 && len(row) > idIdx && row[idIdx] == subID
	})
}

func (r *SubscriptionRepository) deleteWhere(match func(row []string, idIdx int) bool) (bool, error) {
	if err := r.store.EnsureSchema(EntitySubscriptions); err != nil {
		return false, err
	}
	path := r.store.Path(EntitySubscriptions)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	idIdx := headerIndex(rows[0], "sub_id")
	newRows := rows[:1]
	removed := false
	for _, row := range rows[1:] {
		if !removed && len(row) >= 2 && match(row, idIdx) {
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
