package credit

import (
	"errors"

	"costofcapital/pkg/core/reference"
)

// ErrNoRatingTable is returned when the selected category table has no bands.
var ErrNoRatingTable = errors.New("credit: rating table is empty")

// RatingResult is the outcome of a synthetic rating assignment.
// Fallback is set when the coverage ratio fell outside every band and the
// table's first (worst) entry was applied; callers should surface that
// rather than treat the result as a normal match.
type RatingResult struct {
	Rating   string
	Spread   float64
	MinRatio float64
	MaxRatio float64
	Fallback bool
}

// AssignRating scans the table in stored order and returns the first band
// whose closed interval contains the coverage ratio. A ratio outside every
// band resolves to the first entry, flagged as a fallback.
func AssignRating(table reference.RatingTable, coverageRatio float64) (RatingResult, error) {
	if len(table) == 0 {
		return RatingResult{}, ErrNoRatingTable
	}

	for _, band := range table {
		if band.Contains(coverageRatio) {
			return RatingResult{
				Rating:   band.Rating,
				Spread:   band.Spread,
				MinRatio: band.MinRatio,
				MaxRatio: band.MaxRatio,
			}, nil
		}
	}

	worst := table[0]
	return RatingResult{
		Rating:   worst.Rating,
		Spread:   worst.Spread,
		MinRatio: worst.MinRatio,
		MaxRatio: worst.MaxRatio,
		Fallback: true,
	}, nil
}
