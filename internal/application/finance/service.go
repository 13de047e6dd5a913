// Package finance wires the monthly ledger to storage: stat CRUD, the
// memoized cross-entity month total, court breakdowns, and profit sharing.
package finance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"courtledger/internal/domain/beverage"
	"courtledger/internal/domain/booking"
	"courtledger/internal/domain/finance"
	"courtledger/internal/domain/subscription"
	csvstore "courtledger/internal/infrastructure/csv"
	"courtledger/internal/shared/biztime"
	"courtledger/internal/shared/config"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/format"
	"courtledger/internal/shared/logger"
)

// StatInput carries one monthly ledger line.
type StatInput struct {
	Month        string `validate:"required"`
	TotalRevenue int64  `validate:"min=0"`
	TotalCost    int64  `validate:"min=0"`
	CostReason   string
	AutoComputed bool
}

// BreakdownRow is one labelled revenue line in a month breakdown.
type BreakdownRow struct {
	Label string
	Total int64
}

type memoEntry struct {
	signature string
	total     int64
}

type Service struct {
	stats    finance.StatRepository
	shares   finance.ShareEventRepository
	bookings booking.Repository
	subs     subscription.Repository
	sales    beverage.SaleRepository
	store    *csvstore.Store
	partners []finance.Partner
	validate *validator.Validate
	log      logger.Interface

	memoMu sync.Mutex
	memo   map[string]memoEntry
}

func NewService(
	stats finance.StatRepository,
	shares finance.ShareEventRepository,
	bookings booking.Repository,
	subs subscription.Repository,
	sales beverage.SaleRepository,
	store *csvstore.Store,
	partnerCfg []config.PartnerConfig,
	log logger.Interface,
) (*Service, error) {
	partners := make([]finance.Partner, 0, len(partnerCfg))
	for _, p := range partnerCfg {
		partners = append(partners, finance.Partner{Name: p.Name, Percent: p.Percent})
	}
	if err := finance.ValidatePartners(partners); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewLogger()
	}
	return &Service{
		stats:    stats,
		shares:   shares,
		bookings: bookings,
		subs:     subs,
		sales:    sales,
		store:    store,
		partners: partners,
		validate: validator.New(),
		log:      log.Named("finance.service"),
		memo:     make(map[string]memoEntry),
	}, nil
}

// SaveStat appends one ledger line; history for the month is retained.
func (s *Service) SaveStat(ctx context.Context, in StatInput) (*finance.MonthlyStat, error) {
	stat, err := s.statFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.stats.Append(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// UpdateStat rewrites the first ledger line for the month in place.
func (s *Service) UpdateStat(ctx context.Context, in StatInput) (bool, error) {
	stat, err := s.statFromInput(in)
	if err != nil {
		return false, err
	}
	return s.stats.UpdateFirst(ctx, stat)
}

func (s *Service) statFromInput(in StatInput) (*finance.MonthlyStat, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	month, err := biztime.NormalizeMonth(in.Month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return finance.NewMonthlyStat(month, in.TotalRevenue, in.TotalCost, in.CostReason, in.AutoComputed)
}

// DeleteMonth removes every ledger line for the month.
func (s *Service) DeleteMonth(ctx context.Context, month string) (bool, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}
	return s.stats.DeleteMonth(ctx, month)
}

// ListStats returns the whole ledger in file order.
func (s *Service) ListStats(ctx context.Context) ([]*finance.MonthlyStat, error) {
	return s.stats.List(ctx)
}

// StatForMonth returns the newest ledger line for the month, nil when the
// month has none.
func (s *Service) StatForMonth(ctx context.Context, month string) (*finance.MonthlyStat, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	all, err := s.stats.List(ctx)
	if err != nil {
		return nil, err
	}
	var newest *finance.MonthlyStat
	for _, st := range all {
		if st.Month == month {
			newest = st
		}
	}
	return newest, nil
}

// ComputeMonthStat derives a ledger line from the live month total, with
// the cost supplied by the caller.
func (s *Service) ComputeMonthStat(ctx context.Context, month string, totalCost int64, costReason string) (*finance.MonthlyStat, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	revenue, err := s.MonthTotal(ctx, month)
	if err != nil {
		return nil, err
	}
	return finance.NewMonthlyStat(month, revenue, totalCost, costReason, true)
}

// MonthTotal returns the combined bookings + subscriptions + water sales
// revenue for the month, memoized against the source files' modification
// times and the store's mutation generation.
func (s *Service) MonthTotal(ctx context.Context, month string) (int64, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}
	sig := s.signature()

	s.memoMu.Lock()
	if entry, ok := s.memo[month]; ok && entry.signature == sig {
		s.memoMu.Unlock()
		return entry.total, nil
	}
	s.memoMu.Unlock()

	total, err := s.computeMonthTotal(ctx, month)
	if err != nil {
		return 0, err
	}
	s.memoMu.Lock()
	s.memo[month] = memoEntry{signature: sig, total: total}
	s.memoMu.Unlock()
	return total, nil
}

// signature folds the three source files' mtimes with the store generation
// so both file-level and in-process mutations invalidate the memo.
func (s *Service) signature() string {
	return fmt.Sprintf("%d|%d|%d|%d",
		s.store.ModTime(csvstore.EntityBookings).UnixNano(),
		s.store.ModTime(csvstore.EntitySubscriptions).UnixNano(),
		s.store.ModTime(csvstore.EntityWaterSales).UnixNano(),
		s.store.Generation(),
	)
}

func (s *Service) computeMonthTotal(ctx context.Context, month string) (int64, error) {
	var total int64

	recs, err := s.bookings.GetAll(ctx, false)
	if err != nil {
		return 0, err
	}
	for _, b := range recs {
		if b.Month() == month {
			total += b.Price
		}
	}

	subs, err := s.subs.ListMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	for _, sub := range subs {
		total += sub.Price
	}

	sales, err := s.sales.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, sale := range sales {
		if biztime.MonthOf(sale.Date) == month {
			total += sale.LineTotal
		}
	}
	return total, nil
}

// MonthBreakdown returns per-court booking revenue for the month followed
// by one line each for subscriptions and water sales.
func (s *Service) MonthBreakdown(ctx context.Context, month string) ([]BreakdownRow, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	recs, err := s.bookings.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	perCourt := make(map[string]int64)
	for _, b := range recs {
		if b.Month() == month {
			perCourt[b.Court] += b.Price
		}
	}
	courts := make([]string, 0, len(perCourt))
	for court := range perCourt {
		courts = append(courts, court)
	}
	sort.Strings(courts)

	rows := make([]BreakdownRow, 0, len(courts)+2)
	for _, court := range courts {
		rows = append(rows, BreakdownRow{Label: court, Total: perCourt[court]})
	}

	subs, err := s.subs.ListMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	var subTotal int64
	for _, sub := range subs {
		subTotal += sub.Price
	}
	rows = append(rows, BreakdownRow{Label: "Subscriptions", Total: subTotal})

	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	var saleTotal int64
	for _, sale := range sales {
		if biztime.MonthOf(sale.Date) == month {
			saleTotal += sale.LineTotal
		}
	}
	rows = append(rows, BreakdownRow{Label: "Water", Total: saleTotal})
	return rows, nil
}

// Partners returns the configured profit-sharing split.
func (s *Service) Partners() []finance.Partner {
	return s.partners
}

// ComputeShares splits a profit across the configured partners, preserving
// the exact sum.
func (s *Service) ComputeShares(profit int64) (map[string]int64, error) {
	return finance.ComputeShares(profit, s.partners)
}

// RecordShareEvent computes the split for revenue minus cost, persists the
// distribution event and returns it along with the per-partner shares.
func (s *Service) RecordShareEvent(ctx context.Context, scope string, totalRevenue, totalCost int64) (*finance.ShareEvent, map[string]int64, error) {
	profit := totalRevenue - totalCost
	sharesByName, err := finance.ComputeShares(profit, s.partners)
	if err != nil {
		return nil, nil, err
	}

	parts := make([]string, 0, len(s.partners))
	for _, p := range s.partners {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, format.Currency(sharesByName[p.Name])))
	}
	event := finance.NewShareEvent(scope, totalRevenue, totalCost, profit, strings.Join(parts, "; "))
	if err := s.shares.Append(ctx, event); err != nil {
		return nil, nil, err
	}
	s.log.Info("profit shares recorded", "scope", scope, "profit", format.Currency(profit))
	return event, sharesByName, nil
}

// ListShareEvents returns every recorded distribution in file order.
func (s *Service) ListShareEvents(ctx context.Context) ([]*finance.ShareEvent, error) {
	return s.shares.List(ctx)
}

// DeleteShareEvent removes one distribution by its event ID.
func (s *Service) DeleteShareEvent(ctx context.Context, eventID string) (bool, error) {
	return s.shares.Delete(ctx, eventID)
}
