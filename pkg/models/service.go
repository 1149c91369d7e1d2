package models

// PriceBar is one daily observation for a ticker, stored on behalf of an owner.
type PriceBar struct {
	OwnerID string  `json:"-"`
	Ticker  string  `json:"ticker"`
	Date    Date    `json:"date"`
	Open    float64 `json:"open"`
	Close   float64 `json:"close"`
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
}

// Key identifies a bar in storage.
//
//easyjson:skip
type Key struct {
	OwnerID string
	Ticker  string
	Date    Date
}

// Key returns the natural key of the bar.
func (b PriceBar) Key() Key {
	return Key{OwnerID: b.OwnerID, Ticker: b.Ticker, Date: b.Date}
}

// IngestionRequest asks for the daily bars of Ticker between Start and End,
// both inclusive, to be stored for OwnerID.
//
//easyjson:skip
type IngestionRequest struct {
	OwnerID string
	Ticker  string
	Start   Date
	End     Date
}

// Validate checks the request before any I/O happens.
func (r IngestionRequest) Validate() error {
	if r.OwnerID == "" {
		return ErrMissingOwner
	}
	if r.Ticker == "" {
		return ErrMissingTicker
	}
	if r.Start.After(r.End) {
		return &InvalidDateRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// SaveRequest is the body of a save call. OwnerID is filled by the transport
// from the caller identity, never from the body.
type SaveRequest struct {
	OwnerID string `json:"-"`
	Ticker  string `json:"ticker"`
	Start   Date   `json:"start"`
	End     Date   `json:"end"`
}

type SaveResponse struct {
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

//easyjson:skip
type QueryRequest struct {
	OwnerID string
	Ticker  string
}

type QueryResponse struct {
	Data      []PriceBar `json:"data"`
	Error     bool       `json:"error"`
	ErrorText string     `json:"errorText"`
}
