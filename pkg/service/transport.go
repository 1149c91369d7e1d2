// Package service http transport
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"net/http"

	"github.com/mailru/easyjson"
	"github.com/valyala/fasthttp"

	"github.com/pricebars/pkg/models"
)

// DefaultOwnerHeader carries the caller identity when nothing else is configured.
const DefaultOwnerHeader = "X-Owner-ID"

// SaveTransport transport interface
type SaveTransport interface {
	DecodeRequest(ctx context.Context, r *fasthttp.Request) (request models.SaveRequest, err error)
	EncodeResponse(ctx context.Context, r *fasthttp.Response, response *models.SaveResponse) (err error)
}

type saveTransport struct {
	errorCreator ErrorCreator
	ownerHeader  string
}

// DecodeRequest method for decoding requests on server side
func (t *saveTransport) DecodeRequest(ctx context.Context, r *fasthttp.Request) (request models.SaveRequest, err error) {
	if err = request.UnmarshalJSON(r.Body()); err != nil {
		return models.SaveRequest{}, t.errorCreator(
			http.StatusBadRequest,
			"failed to decode JSON request: %v",
			err,
		)
	}
	if request.Start.IsZero() || request.End.IsZero() {
		return models.SaveRequest{}, t.errorCreator(http.StatusBadRequest, "start and end dates are required")
	}
	request.OwnerID = string(r.Header.Peek(t.ownerHeader))
	return
}

// EncodeResponse method for encoding response on server side
func (t *saveTransport) EncodeResponse(ctx context.Context, r *fasthttp.Response, response *models.SaveResponse) (err error) {
	r.Header.Set("Content-Type", "application/json")
	if _, err = easyjson.MarshalToWriter(response, r.BodyWriter()); err != nil {
		return t.errorCreator(http.StatusInternalServerError, "failed to encode JSON response: %s", err)
	}
	return
}

// NewSaveTransport the transport creator for http requests
func NewSaveTransport(
	errorCreator ErrorCreator,
	ownerHeader string,
) SaveTransport {
	if ownerHeader == "" {
		ownerHeader = DefaultOwnerHeader
	}
	return &saveTransport{
		errorCreator: errorCreator,
		ownerHeader:  ownerHeader,
	}
}

// QueryTransport transport interface
type QueryTransport interface {
	DecodeRequest(ctx context.Context, r *fasthttp.Request) (request models.QueryRequest, err error)
	EncodeResponse(ctx context.Context, r *fasthttp.Response, response *models.QueryResponse) (err error)
}

type queryTransport struct {
	errorCreator ErrorCreator
	ownerHeader  string
}

// DecodeRequest method for decoding requests on server side
func (t *queryTransport) DecodeRequest(ctx context.Context, r *fasthttp.Request) (request models.QueryRequest, err error) {
	request.OwnerID = string(r.Header.Peek(t.ownerHeader))
	request.Ticker = string(r.URI().QueryArgs().Peek("ticker"))
	return
}

// EncodeResponse method for encoding response on server side
func (t *queryTransport) EncodeResponse(ctx context.Context, r *fasthttp.Response, response *models.QueryResponse) (err error) {
	r.Header.Set("Content-Type", "application/json")
	if _, err = easyjson.MarshalToWriter(response, r.BodyWriter()); err != nil {
		return t.errorCreator(http.StatusInternalServerError, "failed to encode JSON response: %s", err)
	}
	return
}

// NewQueryTransport the transport creator for http requests
func NewQueryTransport(
	errorCreator ErrorCreator,
	ownerHeader string,
) QueryTransport {
	if ownerHeader == "" {
		ownerHeader = DefaultOwnerHeader
	}
	return &queryTransport{
		errorCreator: errorCreator,
		ownerHeader:  ownerHeader,
	}
}
