// Package service logging wrapper
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/pricebars/pkg/models"
)

// loggingMiddleware wraps Service and logs request information to the provided logger
type loggingMiddleware struct {
	logger log.Logger
	svc    Service
}

func (s *loggingMiddleware) Save(ctx context.Context, request *models.SaveRequest) (response models.SaveResponse, err error) {
	defer func(begin time.Time) {
		_ = s.wrap(err).Log(
			"method", "Save",
			"owner", request.OwnerID,
			"ticker", request.Ticker,
			"start", request.Start,
			"end", request.End,
			"err", err,
			"elapsed", time.Since(begin),
		)
	}(time.Now())
	return s.svc.Save(ctx, request)
}

func (s *loggingMiddleware) Query(ctx context.Context, request *models.QueryRequest) (response models.QueryResponse, err error) {
	defer func(begin time.Time) {
		_ = s.wrap(err).Log(
			"method", "Query",
			"owner", request.OwnerID,
			"ticker", request.Ticker,
			"bars", len(response.Data),
			"err", err,
			"elapsed", time.Since(begin),
		)
	}(time.Now())
	return s.svc.Query(ctx, request)
}

func (s *loggingMiddleware) wrap(err error) log.Logger {
	lvl := level.Debug
	if err != nil {
		lvl = level.Error
	}
	return lvl(s.logger)
}

// NewLoggingMiddleware ...
func NewLoggingMiddleware(logger log.Logger, svc Service) Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}
