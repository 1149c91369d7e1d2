package pipeline

import (
	"context"

	"github.com/pricebars/pkg/models"
)

// BatchWriter writes price bars in one batch.
type BatchWriter interface {
	SaveAll(ctx context.Context, bars []models.PriceBar) (int64, error)
}

// Persist writes bars as a single batch. An empty batch is a no-op.
func Persist(ctx context.Context, w BatchWriter, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	n, err := w.SaveAll(ctx, bars)
	if err != nil {
		return 0, &models.StorageError{Op: "persist", Err: err}
	}
	return n, nil
}
