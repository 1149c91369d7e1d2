// Package service instrumenting wrapper
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/pricebars/pkg/models"
)

// instrumentingMiddleware wraps Service and enables request metrics
type instrumentingMiddleware struct {
	reqCount    metrics.Counter
	reqDuration metrics.Histogram
	svc         Service
}

func (s *instrumentingMiddleware) Save(ctx context.Context, request *models.SaveRequest) (response models.SaveResponse, err error) {
	defer func(begin time.Time) { s.recordMetrics("Save", begin, err) }(time.Now())
	return s.svc.Save(ctx, request)
}

func (s *instrumentingMiddleware) Query(ctx context.Context, request *models.QueryRequest) (response models.QueryResponse, err error) {
	defer func(begin time.Time) { s.recordMetrics("Query", begin, err) }(time.Now())
	return s.svc.Query(ctx, request)
}

func (s *instrumentingMiddleware) recordMetrics(method string, startTime time.Time, err error) {
	labels := []string{
		"method", method,
		"error", strconv.FormatBool(err != nil),
	}
	s.reqCount.With(labels...).Add(1)
	s.reqDuration.With(labels...).Observe(time.Since(startTime).Seconds())
}

// NewInstrumentingMiddleware ...
func NewInstrumentingMiddleware(reqCount metrics.Counter, reqDuration metrics.Histogram, svc Service) Service {
	return &instrumentingMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		svc:         svc,
	}
}
