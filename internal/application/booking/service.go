// Package booking wires the booking domain to storage: overlap-checked
// appends, natural-key and ID-based updates and deletes, daily and monthly
// aggregation, and the undo log over booking mutations.
package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"courtledger/internal/domain/booking"
	"courtledger/internal/shared/config"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/format"
	"courtledger/internal/shared/logger"
)

// AppendInput carries one new booking. BypassOverlap skips the conflict
// scan, for operators intentionally double-booking a court.
type AppendInput struct {
	Date          string `validate:"required"`
	Court         string `validate:"required"`
	Slot          string `validate:"required"`
	Price         int64  `validate:"min=0"`
	Activity      string
	Person        string
	BypassOverlap bool
}

// UpdateInput rewrites the first booking matching the old tuple. The
// overlap re-check is opt-in and excludes the record being edited.
type UpdateInput struct {
	OldDate  string `validate:"required"`
	OldCourt string `validate:"required"`
	OldSlot  string `validate:"required"`
	OldPrice int64

	Date           string `validate:"required"`
	Court          string `validate:"required"`
	Slot           string `validate:"required"`
	Price          int64  `validate:"min=0"`
	Activity       string
	Person         string
	RecheckOverlap bool
}

type Service struct {
	repo     booking.Repository
	rates    *booking.RateTable
	pricing  config.PricingConfig
	undo     *UndoLog
	validate *validator.Validate
	log      logger.Interface
}

func NewService(repo booking.Repository, pricing config.PricingConfig, log logger.Interface) *Service {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Service{
		repo:     repo,
		rates:    booking.NewRateTable(pricing),
		pricing:  pricing,
		undo:     NewUndoLog(DefaultUndoDepth),
		validate: validator.New(),
		log:      log.Named("booking.service"),
	}
}

// Append validates, checks for slot conflicts and persists one booking.
func (s *Service) Append(ctx context.Context, in AppendInput) (*booking.Booking, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	b, err := booking.NewBooking(in.Date, in.Court, in.Slot, in.Price, in.Activity, in.Person)
	if err != nil {
		return nil, err
	}
	if !in.BypassOverlap {
		if err := s.checkOverlap(ctx, b, nil); err != nil {
			return nil, err
		}
	}
	s.warnOnPrice(b.Price)
	if err := s.repo.Append(ctx, b); err != nil {
		return nil, err
	}
	recordID := b.ID
	s.undo.Push(UndoAction{
		Label: fmt.Sprintf("append %s %s %s", b.Date, b.Court, b.SlotText),
		Revert: func(ctx context.Context) error {
			ok, err := s.repo.DeleteByID(ctx, recordID)
			if err == nil && !ok {
				return apperrors.NewNotFoundError("booking to undo no longer exists", recordID)
			}
			return err
		},
	})
	s.log.Info("booking appended", "record_id", b.ID, "date", b.Date, "court", b.Court, "slot", b.SlotText)
	return b, nil
}

// Update rewrites the first booking matching the old tuple. Returns false
// when nothing matched.
func (s *Service) Update(ctx context.Context, in UpdateInput) (bool, error) {
	if err := s.validate.Struct(in); err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}
	updated, err := booking.NewBooking(in.Date, in.Court, in.Slot, in.Price, in.Activity, in.Person)
	if err != nil {
		return false, err
	}
	if in.RecheckOverlap {
		exclude := &excludeKey{date: in.OldDate, court: in.OldCourt, slot: in.OldSlot}
		if err := s.checkOverlap(ctx, updated, exclude); err != nil {
			return false, err
		}
	}
	s.warnOnPrice(updated.Price)
	return s.repo.Update(ctx, in.OldDate, in.OldCourt, in.OldSlot, in.OldPrice, updated)
}

// UpdateByID resolves the record by its generated ID, then rewrites it
// through the same old-tuple path so the stored ID survives.
func (s *Service) UpdateByID(ctx context.Context, recordID string, in UpdateInput) (bool, error) {
	current, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	in.OldDate = current.Date
	in.OldCourt = current.Court
	in.OldSlot = current.SlotText
	in.OldPrice = current.Price
	return s.Update(ctx, in)
}

// DeleteByID removes one booking and makes the removal undoable.
func (s *Service) DeleteByID(ctx context.Context, recordID string) (bool, error) {
	removed, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}
	ok, err := s.repo.DeleteByID(ctx, recordID)
	if err != nil || !ok {
		return ok, err
	}
	s.pushDeleteUndo(removed)
	return true, nil
}

// DeleteFirstMatch removes the first booking matching the natural key and
// makes the removal undoable.
func (s *Service) DeleteFirstMatch(ctx context.Context, date, court, slot string, price int64) (bool, error) {
	removed, ok, err := s.repo.DeleteFirstMatch(ctx, date, court, slot, price)
	if err != nil || !ok {
		return ok, err
	}
	s.pushDeleteUndo(removed)
	return true, nil
}

func (s *Service) pushDeleteUndo(removed *booking.Booking) {
	b := *removed
	s.undo.Push(UndoAction{
		Label: fmt.Sprintf("delete %s %s %s", b.Date, b.Court, b.SlotText),
		Revert: func(ctx context.Context) error {
			return s.repo.Append(ctx, &b)
		},
	})
	s.log.Info("booking deleted", "record_id", removed.ID, "date", removed.Date, "court", removed.Court)
}

// Undo reverses the most recent append or delete, newest first.
func (s *Service) Undo(ctx context.Context) (string, error) {
	return s.undo.Undo(ctx)
}

// UndoDepth reports how many mutations are currently reversible.
func (s *Service) UndoDepth() int {
	return s.undo.Len()
}

// GetAll exposes the cached collection, mainly for callers composing their
// own views.
func (s *Service) GetAll(ctx context.Context, forceReload bool) ([]*booking.Booking, error) {
	return s.repo.GetAll(ctx, forceReload)
}

// ListByDate returns the bookings for one exact date, sorted by court then
// slot start.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*booking.Booking, error) {
	all, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	var out []*booking.Booking
	for _, b := range all {
		if b.Date == date {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Court != out[j].Court {
			return out[i].Court < out[j].Court
		}
		return out[i].Slot.Start < out[j].Slot.Start
	})
	return out, nil
}

// ListMonth returns the bookings whose date falls in the YYYY-MM month.
func (s *Service) ListMonth(ctx context.Context, month string) ([]*booking.Booking, error) {
	all, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	var out []*booking.Booking
	for _, b := range all {
		if b.Month() == month {
			out = append(out, b)
		}
	}
	return out, nil
}

// DailyTotal sums booking prices for one exact date.
func (s *Service) DailyTotal(ctx context.Context, date string) (int64, error) {
	all, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, b := range all {
		if b.Date == date {
			total += b.Price
		}
	}
	return total, nil
}

// DailyBreakdownByCourt sums one date's booking revenue per court.
func (s *Service) DailyBreakdownByCourt(ctx context.Context, date string) (map[string]int64, error) {
	all, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64)
	for _, b := range all {
		if b.Date == date {
			out[b.Court] += b.Price
		}
	}
	return out, nil
}

// MonthBookingsTotal sums booking prices across one month.
func (s *Service) MonthBookingsTotal(ctx context.Context, month string) (int64, error) {
	recs, err := s.ListMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, b := range recs {
		total += b.Price
	}
	return total, nil
}

// GroupedByDate buckets one month's bookings by date, dates sorted
// ascending.
func (s *Service) GroupedByDate(ctx context.Context, month string) ([]string, map[string][]*booking.Booking, error) {
	recs, err := s.ListMonth(ctx, month)
	if err != nil {
		return nil, nil, err
	}
	groups := make(map[string][]*booking.Booking)
	var dates []string
	for _, b := range recs {
		if _, seen := groups[b.Date]; !seen {
			dates = append(dates, b.Date)
		}
		groups[b.Date] = append(groups[b.Date], b)
	}
	sort.Strings(dates)
	return dates, groups, nil
}

// SuggestPrice returns the flat hourly table rate for the activity and slot.
func (s *Service) SuggestPrice(activity, slot string) (int64, error) {
	ts, err := booking.ParseTimeSlot(slot)
	if err != nil {
		return 0, err
	}
	return s.rates.SuggestPrice(ts, activity), nil
}

// SlotPrice prices a whole slot, including the lighting surcharge when
// requested.
func (s *Service) SlotPrice(activity, slot string, useLight bool) (int64, error) {
	ts, err := booking.ParseTimeSlot(slot)
	if err != nil {
		return 0, err
	}
	return s.rates.SlotPrice(activity, ts, useLight), nil
}

type excludeKey struct {
	date, court, slot string
}

// checkOverlap scans existing bookings on the candidate's date and court.
// When exclude is set, the first record matching it is skipped so an edit
// does not conflict with itself.
func (s *Service) checkOverlap(ctx context.Context, candidate *booking.Booking, exclude *excludeKey) error {
	all, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return err
	}
	excluded := false
	for _, b := range all {
		if exclude != nil && !excluded &&
			b.Date == exclude.date && b.Court == exclude.court && b.SlotText == exclude.slot {
			excluded = true
			continue
		}
		if b.Date != candidate.Date || b.Court != candidate.Court {
			continue
		}
		if candidate.Slot.Overlaps(b.Slot) {
			return apperrors.NewConflictError(
				fmt.Sprintf("slot %s overlaps existing booking %s on %s %s",
					candidate.SlotText, b.SlotText, b.Court, b.Date))
		}
	}
	return nil
}

func (s *Service) warnOnPrice(price int64) {
	if s.pricing.PriceWarnCeiling > 0 && price > s.pricing.PriceWarnCeiling {
		s.log.Warn("booking price above sanity ceiling",
			"price", format.Currency(price),
			"ceiling", format.Currency(s.pricing.PriceWarnCeiling))
	}
}
