package service

import (
	"context"

	"github.com/pricebars/pkg/models"
	"github.com/pricebars/pkg/storage"
)

// Service is the trigger surface of the ingestion pipeline.
type Service interface {
	// Save dispatches an ingestion and returns once it is dispatched. Only
	// request validation errors are returned.
	Save(ctx context.Context, request *models.SaveRequest) (response models.SaveResponse, err error)
	// Query returns the stored bars of the caller for one ticker.
	Query(ctx context.Context, request *models.QueryRequest) (response models.QueryResponse, err error)
}

// Dispatcher starts ingestions.
type Dispatcher interface {
	Save(req models.IngestionRequest) error
}

// BarFinder reads stored bars.
type BarFinder interface {
	FindByOwnerAndTicker(ctx context.Context, ownerID, ticker string) ([]models.PriceBar, error)
}

var _ BarFinder = storage.Store(nil)

type service struct {
	dispatcher Dispatcher
	finder     BarFinder
}

func (s *service) Save(ctx context.Context, request *models.SaveRequest) (response models.SaveResponse, err error) {
	err = s.dispatcher.Save(models.IngestionRequest{
		OwnerID: request.OwnerID,
		Ticker:  request.Ticker,
		Start:   request.Start,
		End:     request.End,
	})
	return
}

func (s *service) Query(ctx context.Context, request *models.QueryRequest) (response models.QueryResponse, err error) {
	if request.OwnerID == "" {
		err = models.ErrMissingOwner
		return
	}
	if request.Ticker == "" {
		err = models.ErrMissingTicker
		return
	}
	bars, err := s.finder.FindByOwnerAndTicker(ctx, request.OwnerID, request.Ticker)
	if err != nil {
		err = &models.StorageError{Op: "query", Err: err}
		return
	}
	response.Data = bars
	return
}

// NewService ...
func NewService(dispatcher Dispatcher, finder BarFinder) Service {
	return &service{dispatcher: dispatcher, finder: finder}
}
