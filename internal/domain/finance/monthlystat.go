// Package finance holds the monthly statistics ledger and the partner
// profit-sharing arithmetic.
package finance

import (
	"strings"

	"courtledger/internal/shared/biztime"
	apperrors "courtledger/internal/shared/errors"
)

// MonthlyStat is one ledger line for a calendar month. The file keeps full
// history: saves append, updates rewrite the first row for the month.
type MonthlyStat struct {
	Month        string // YYYY-MM
	TotalRevenue int64
	TotalCost    int64
	CostReason   string
	Profit       int64 // revenue - cost, fixed at write time
	AutoComputed bool
}

// NewMonthlyStat validates inputs and computes the profit column.
func NewMonthlyStat(month string, totalRevenue, totalCost int64, costReason string, autoComputed bool) (*MonthlyStat, error) {
	if err := biztime.ValidateMonth(month); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if totalRevenue < 0 || totalCost < 0 {
		return nil, apperrors.NewValidationError("revenue and cost must not be negative")
	}
	return &MonthlyStat{
		Month:        month,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		CostReason:   strings.TrimSpace(costReason),
		Profit:       ComputeProfit(totalRevenue, totalCost),
		AutoComputed: autoComputed,
	}, nil
}

// ComputeProfit is the single place profit is derived.
func ComputeProfit(totalRevenue, totalCost int64) int64 {
	return totalRevenue - totalCost
}
