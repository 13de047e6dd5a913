// Package report holds the read-only diagnostics: the integrity checker
// and the backup exporter. Nothing in this package mutates stored data.
package report

import (
	"context"
	"sort"

	"courtledger/internal/domain/booking"
	"courtledger/internal/shared/logger"
)

// topDayCount caps the highest-revenue-days listing in the report.
const topDayCount = 5

// OverlapPair is one detected conflict between two bookings on the same
// date and court.
type OverlapPair struct {
	Date  string
	Court string
	SlotA string
	SlotB string
}

// DayRevenue is one date's summed booking revenue.
type DayRevenue struct {
	Date  string
	Total int64
}

// IntegrityReport is the structured result of one diagnostic pass.
type IntegrityReport struct {
	TotalRecords   int
	Overlaps       []OverlapPair
	HasIDColumn    bool
	MissingIDCount int
	TopRevenueDays []DayRevenue
}

func (r *IntegrityReport) OverlapCount() int {
	return len(r.Overlaps)
}

// Clean reports whether the pass found nothing to flag.
func (r *IntegrityReport) Clean() bool {
	return len(r.Overlaps) == 0 && r.MissingIDCount == 0
}

// IntegrityChecker runs pairwise overlap detection over a fresh reload of
// the booking collection plus a raw scan for missing identifiers.
type IntegrityChecker struct {
	repo booking.Repository
	raw  booking.RawScanner
	log  logger.Interface
}

func NewIntegrityChecker(repo booking.Repository, raw booking.RawScanner, log logger.Interface) *IntegrityChecker {
	if log == nil {
		log = logger.NewLogger()
	}
	return &IntegrityChecker{repo: repo, raw: raw, log: log.Named("report.integrity")}
}

// Check performs the full pass. The reload is forced so the report reflects
// the file, not the cache.
func (c *IntegrityChecker) Check(ctx context.Context) (*IntegrityReport, error) {
	recs, err := c.repo.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}
	report := &IntegrityReport{TotalRecords: len(recs)}

	type groupKey struct{ date, court string }
	groups := make(map[groupKey][]*booking.Booking)
	var keys []groupKey
	for _, b := range recs {
		k := groupKey{b.Date, b.Court}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], b)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].court < keys[j].court
	})

	// every conflicting pair is collected, not just the first per group
	for _, k := range keys {
		group := groups[k]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[i].Slot.Overlaps(group[j].Slot) {
					report.Overlaps = append(report.Overlaps, OverlapPair{
						Date:  k.date,
						Court: k.court,
						SlotA: group[i].SlotText,
						SlotB: group[j].SlotText,
					})
				}
			}
		}
	}

	byDay := make(map[string]int64)
	for _, b := range recs {
		byDay[b.Date] += b.Price
	}
	days := make([]DayRevenue, 0, len(byDay))
	for date, total := range byDay {
		days = append(days, DayRevenue{Date: date, Total: total})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Total != days[j].Total {
			return days[i].Total > days[j].Total
		}
		return days[i].Date < days[j].Date
	})
	if len(days) > topDayCount {
		days = days[:topDayCount]
	}
	report.TopRevenueDays = days

	scan, err := c.raw.ScanRaw(ctx)
	if err != nil {
		return nil, err
	}
	report.HasIDColumn = scan.HasIDHeader
	report.MissingIDCount = scan.MissingIDCount

	c.log.Info("integrity pass complete",
		"records", report.TotalRecords,
		"overlaps", report.OverlapCount(),
		"missing_ids", report.MissingIDCount)
	return report, nil
}
