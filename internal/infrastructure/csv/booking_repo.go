package csv

import (
	"context"
	"strconv"
	"sync"

	"courtledger/internal/domain/booking"
	"courtledger/internal/shared/logger"
)

// BookingRepository implements booking.Repository over the bookings file.
// The whole collection is cached in memory; every successful mutation marks
// the cache dirty so the next read reloads from disk.
type BookingRepository struct {
	store *Store
	log   logger.Interface

	mu    sync.Mutex
	cache []*booking.Booking
	dirty bool
	// loads counts full file reads, exposed for tests asserting the cache
	// actually short-circuits disk access.
	loads int
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{
		store: store,
		log:   store.log.Named("bookings"),
		dirty: true,
	}
}

func (r *BookingRepository) GetAll(ctx context.Context, forceReload bool) ([]*booking.Booking, error) {
	if err := r.store.EnsureSchema(EntityBookings); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache != nil && !r.dirty && !forceReload {
		return r.cache, nil
	}
	recs, err := r.load()
	if err != nil {
		return nil, err
	}
	r.cache = recs
	r.dirty = false
	return r.cache, nil
}

// load re-reads the whole file, tolerating short or malformed rows by
// defaulting fields rather than failing the read.
func (r *BookingRepository) load() ([]*booking.Booking, error) {
	rows, err := readRows(r.store.Path(EntityBookings))
	if err != nil {
		return nil, err
	}
	var recs []*booking.Booking
	if len(rows) < 2 {
		return recs, nil
	}
	idIdx := headerIndex(rows[0], "record_id")
	pos := 0
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		recs = append(recs, parseBookingRow(row, idIdx, pos))
		pos++
	}
	r.loads++
	return recs, nil
}

func parseBookingRow(row []string, idIdx, pos int) *booking.Booking {
	price, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		price = 0
	}
	b := &booking.Booking{
		Date:     row[0],
		Court:    row[1],
		SlotText: row[2],
		Price:    price,
		RowIndex: pos,
	}
	if ts, err := booking.ParseTimeSlot(row[2]); err == nil {
		b.Slot = ts
		b.SlotText = ts.String()
	}
	if len(row) > 4 {
		b.Activity = row[4]
	}
	if len(row) > 5 {
		b.Person = row[5]
	}
	if idIdx >= 0 && len(row) > idIdx {
		b.ID = row[idIdx]
	}
	return b
}

func bookingRow(b *booking.Booking) []string {
	return []string{
		b.Date,
		b.Court,
		b.SlotText,
		strconv.FormatInt(b.Price, 10),
		sanitizeCell(b.Activity),
		sanitizeCell(b.Person),
		b.ID,
	}
}

func (r *BookingRepository) FindByID(ctx context.Context, recordID string) (*booking.Booking, error) {
	if recordID == "" {
		return nil, nil
	}
	recs, err := r.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, b := range recs {
		if b.ID == recordID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *BookingRepository) Append(ctx context.Context, b *booking.Booking) error {
	if err := r.store.EnsureSchema(EntityBookings); err != nil {
		return err
	}
	if err := r.store.appendRow(r.store.Path(EntityBookings), bookingRow(b)); err != nil {
		return err
	}
	r.Invalidate()
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, oldDate, oldCourt, oldSlot string, oldPrice int64, updated *booking.Booking) (bool, error) {
	if err := r.store.EnsureSchema(EntityBookings); err != nil {
		return false, err
	}
	path := r.store.Path(EntityBookings)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return false, err
	}
	idIdx := headerIndex(rows[0], "record_id")
	changed := false
	for i, row := range rows[1:] {
		if changed || !matchesBookingRow(row, oldDate, oldCourt, oldSlot, oldPrice) {
			continue
		}
		newRow := bookingRow(updated)
		// keep the stored record ID across field updates
		if idIdx >= 0 && len(row) > idIdx {
			newRow[len(newRow)-1] = row[idIdx]
			updated.ID = row[idIdx]
		}
		rows[i+1] = newRow
		changed = true
	}
	if !changed {
		return false, nil
	}
	if err := r.store.rewriteAll(path, rows); err != nil {
		return false, err
	}
	r.Invalidate()
	return true, nil
}

func (r *BookingRepository) DeleteByID(ctx context.Context, recordID string) (bool, error) {
	if recordID == "" {
		return false, nil
	}
	_, ok, err := r.deleteWhere(func(row []string, idIdx int) bool {
		return idIdx >= 0 && len(row) > idIdx && row[idIdx] == recordID
	})
	return ok, err
}

func (r *BookingRepository) DeleteFirstMatch(ctx context.Context, date, court, slot string, price int64) (*booking.Booking, bool, error) {
	return r.deleteWhere(func(row []string, idIdx int) bool {
		return matchesBookingRow(row, date, court, slot, price)
	})
}

func (r *BookingRepository) deleteWhere(match func(row []string, idIdx int) bool) (*booking.Booking, bool, error) {
	if err := r.store.EnsureSchema(EntityBookings); err != nil {
		return nil, false, err
	}
	path := r.store.Path(EntityBookings)
	rows, err := readRows(path)
	if err != nil || len(rows) == 0 {
		return nil, false, err
	}
	idIdx := headerIndex(rows[0], "record_id")
	newRows := rows[:1]
	var removed *booking.Booking
	for _, row := range rows[1:] {
		if removed == nil && len(row) >= 4 && match(row, idIdx) {
			removed = parseBookingRow(row, idIdx, 0)
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
	r.Invalidate()
	return removed, true, nil
}

// matchesBookingRow implements the natural-key match: date, court and slot
// compare exactly; price compares only when the stored cell parses.
func matchesBookingRow(row []string, date, court, slot string, price int64) bool {
	if len(row) < 4 || row[0] != date || row[1] != court || row[2] != slot {
		return false
	}
	stored, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return true
	}
	return stored == price
}

func (r *BookingRepository) Invalidate() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
}

// Loads reports how many full file reads have happened. Test hook.
func (r *BookingRepository) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

// ScanRaw reports header shape and empty-identifier rows straight off the
// file, bypassing the cache. Rows shorter than the header do not count as
// missing an ID; they are the parser's problem, not the migration's.
func (r *BookingRepository) ScanRaw(ctx context.Context) (*booking.RawScan, error) {
	rows, err := readRows(r.store.Path(EntityBookings))
	if err != nil {
		return nil, err
	}
	scan := &booking.RawScan{}
	if len(rows) == 0 {
		return scan, nil
	}
	header := rows[0]
	idIdx := headerIndex(header, "record_id")
	scan.HasIDHeader = idIdx >= 0
	for _, row := range rows[1:] {
		scan.TotalRows++
		if scan.HasIDHeader && len(row) >= len(header) && row[idIdx] == "" {
			scan.MissingIDCount++
		}
	}
	return scan, nil
}
