package provider

import (
	"github.com/pricebars/pkg/models"
)

// Parse decodes one provider document into price bars for ticker, stored on
// behalf of ownerID.
//
// A document without a results key means the provider knows nothing about
// the ticker. Numeric fields missing from a result are read as zero.
func Parse(doc []byte, ticker, ownerID string) ([]models.PriceBar, error) {
	var page models.AggregatesPage
	if err := page.UnmarshalJSON(doc); err != nil {
		return nil, &models.ParseError{Err: err}
	}
	if page.Results == nil {
		return nil, &models.UnknownTickerError{Ticker: ticker, Reason: "no results for ticker"}
	}

	bars := make([]models.PriceBar, 0, len(page.Results))
	for _, agg := range page.Results {
		bars = append(bars, models.PriceBar{
			OwnerID: ownerID,
			Ticker:  ticker,
			Date:    models.DateFromEpochMillis(agg.Timestamp),
			Open:    agg.Open,
			Close:   agg.Close,
			High:    agg.High,
			Low:     agg.Low,
		})
	}
	return bars, nil
}
