package pipeline

import (
	"context"

	"github.com/pricebars/pkg/models"
)

// DateLookup reports which dates are already stored for an owner and ticker.
type DateLookup interface {
	ExistingDates(ctx context.Context, ownerID, ticker string, dates []models.Date) ([]models.Date, error)
}

// Deduplicate drops the bars whose date is already stored. All bars must
// share the owner and ticker of the first one. Input order is kept.
func Deduplicate(ctx context.Context, lookup DateLookup, bars []models.PriceBar) ([]models.PriceBar, error) {
	if len(bars) == 0 {
		return nil, nil
	}
	ownerID, ticker := bars[0].OwnerID, bars[0].Ticker

	seen := make(map[models.Date]struct{}, len(bars))
	dates := make([]models.Date, 0, len(bars))
	for _, b := range bars {
		if _, ok := seen[b.Date]; ok {
			continue
		}
		seen[b.Date] = struct{}{}
		dates = append(dates, b.Date)
	}

	existing, err := lookup.ExistingDates(ctx, ownerID, ticker, dates)
	if err != nil {
		return nil, &models.StorageError{Op: "dedup", Err: err}
	}
	stored := make(map[models.Date]struct{}, len(existing))
	for _, d := range existing {
		stored[d] = struct{}{}
	}

	fresh := make([]models.PriceBar, 0, len(bars))
	for _, b := range bars {
		if _, ok := stored[b.Date]; !ok {
			fresh = append(fresh, b)
		}
	}
	return fresh, nil
}
