package finance

import (
	"math"
	"sort"

	apperrors "courtledger/internal/shared/errors"
)

// Partner is one profit-share participant with a fixed percentage.
type Partner struct {
	Name    string
	Percent float64
}

// percentage sums are validated to this tolerance to absorb float noise
const percentSumTolerance = 1e-9

// ValidatePartners checks that the share percentages sum to exactly 100.
func ValidatePartners(partners []Partner) error {
	if len(partners) == 0 {
		return apperrors.NewValidationError("at least one partner share is required")
	}
	sum := 0.0
	seen := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		if p.Name == "" {
			return apperrors.NewValidationError("partner name must not be empty")
		}
		if _, dup := seen[p.Name]; dup {
			return apperrors.NewValidationError("duplicate partner name", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Percent < 0 {
			return apperrors.NewValidationError("partner percent must not be negative", p.Name)
		}
		sum += p.Percent
	}
	if math.Abs(sum-100.0) > percentSumTolerance {
		return apperrors.NewValidationError("partner percentages must sum to 100")
	}
	return nil
}

// ComputeShares splits a profit across the partners. Each raw share is
// rounded to the nearest whole VND, then the rounding remainder is settled
// by bumping the shares with the largest (positive remainder) or smallest
// (negative remainder) fractional parts by one, in order, until the rounded
// shares sum exactly to profit.
func ComputeShares(profit int64, partners []Partner) (map[string]int64, error) {
	if err := ValidatePartners(partners); err != nil {
		return nil, err
	}

	type allocation struct {
		name    string
		raw     float64
		rounded int64
	}
	allocs := make([]allocation, 0, len(partners))
	var totalRounded int64
	for _, p := range partners {
		raw := float64(profit) * p.Percent / 100.0
		rounded := int64(math.Round(raw))
		allocs = append(allocs, allocation{name: p.Name, raw: raw, rounded: rounded})
		totalRounded += rounded
	}

	diff := profit - totalRounded
	if diff != 0 {
		desc := diff > 0
		sort.SliceStable(allocs, func(i, j int) bool {
			fi := allocs[i].raw - math.Floor(allocs[i].raw)
			fj := allocs[j].raw - math.Floor(allocs[j].raw)
			if desc {
				return fi > fj
			}
			return fi < fj
		})
		step := int64(1)
		if diff < 0 {
			step = -1
		}
		for i := 0; diff != 0; i = (i + 1) % len(allocs) {
			allocs[i].rounded += step
			diff -= step
		}
	}

	shares := make(map[string]int64, len(allocs))
	for _, a := range allocs {
		shares[a.name] = a.rounded
	}
	return shares, nil
}
