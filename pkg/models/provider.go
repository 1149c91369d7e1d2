package models

// AggregatesPage is one document returned by the provider's daily
// aggregates resource. Results is nil when the key is absent from the
// document and empty when the provider sent an empty array.
type AggregatesPage struct {
	Ticker       string      `json:"ticker"`
	Status       string      `json:"status"`
	ResultsCount int         `json:"resultsCount"`
	Results      []Aggregate `json:"results"`
	NextURL      string      `json:"next_url"`
}

// Aggregate is a single bar as the provider encodes it. Missing numeric
// fields decode as zero.
type Aggregate struct {
	Timestamp      int64   `json:"t"`
	Open           float64 `json:"o"`
	Close          float64 `json:"c"`
	High           float64 `json:"h"`
	Low            float64 `json:"l"`
	Volume         float64 `json:"v"`
	VolumeWeighted float64 `json:"vw"`
	Count          int64   `json:"n"`
}

// PageCursor holds only the pagination link of a page.
type PageCursor struct {
	NextURL string `json:"next_url"`
}
