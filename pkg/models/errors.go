package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingOwner  = errors.New("owner is required")
	ErrMissingTicker = errors.New("ticker is required")
)

// InvalidDateRangeError is returned when the start date is after the end date.
type InvalidDateRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("start date %s must not be after end date %s", e.Start, e.End)
}

// UnknownTickerError is returned when the provider rejects the ticker or has
// no usable results for it.
type UnknownTickerError struct {
	Ticker string
	Reason string
}

func (e *UnknownTickerError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unknown ticker %q", e.Ticker)
	}
	return fmt.Sprintf("unknown ticker %q: %s", e.Ticker, e.Reason)
}

// ParseError wraps a provider document that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse provider response: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError wraps a transport failure talking to the provider.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageError wraps a failed read or write against the record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrorKind names the class of err for logs and metric labels.
func ErrorKind(err error) string {
	var (
		dateRange *InvalidDateRangeError
		unknown   *UnknownTickerError
		parse     *ParseError
		fetch     *FetchError
		storage   *StorageError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &dateRange):
		return "invalid_date_range"
	case errors.As(err, &unknown):
		return "unknown_ticker"
	case errors.As(err, &parse):
		return "parse"
	case errors.As(err, &fetch):
		return "fetch"
	case errors.As(err, &storage):
		return "storage"
	case errors.Is(err, ErrMissingOwner), errors.Is(err, ErrMissingTicker):
		return "invalid_request"
	default:
		return "internal"
	}
}
