// Package service http client
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/pricebars/pkg/models"
)

type client struct {
	cli *fasthttp.HostClient

	transportSave  SaveClientTransport
	transportQuery QueryClientTransport
}

// Save ...
func (s *client) Save(ctx context.Context, request *models.SaveRequest) (response models.SaveResponse, err error) {
	req, res := fasthttp.AcquireRequest(), fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(res)
	}()

	if err = s.transportSave.EncodeRequest(ctx, req, request); err != nil {
		return
	}
	if err = s.do(ctx, req, res); err != nil {
		return
	}
	return s.transportSave.DecodeResponse(ctx, res)
}

// Query ...
func (s *client) Query(ctx context.Context, request *models.QueryRequest) (response models.QueryResponse, err error) {
	req, res := fasthttp.AcquireRequest(), fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(res)
	}()

	if err = s.transportQuery.EncodeRequest(ctx, req, request); err != nil {
		return
	}
	if err = s.do(ctx, req, res); err != nil {
		return
	}
	return s.transportQuery.DecodeResponse(ctx, res)
}

func (s *client) do(ctx context.Context, req *fasthttp.Request, res *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return s.cli.DoDeadline(req, res, deadline)
	}
	return s.cli.Do(req, res)
}

// NewClient the client creator
func NewClient(
	cli *fasthttp.HostClient,

	transportSave SaveClientTransport,
	transportQuery QueryClientTransport,
) Service {
	return &client{
		cli: cli,

		transportSave:  transportSave,
		transportQuery: transportQuery,
	}
}

// SaveClientTransport transport interface
type SaveClientTransport interface {
	EncodeRequest(ctx context.Context, r *fasthttp.Request, request *models.SaveRequest) (err error)
	DecodeResponse(ctx context.Context, r *fasthttp.Response) (response models.SaveResponse, err error)
}

type saveClientTransport struct {
	errorProcessor ErrorProcessor
	errorCreator   ErrorCreator
	pathTemplate   string
	method         string
	ownerHeader    string
}

// EncodeRequest method for encoding requests on client side
func (t *saveClientTransport) EncodeRequest(ctx context.Context, r *fasthttp.Request, request *models.SaveRequest) (err error) {
	body, err := request.MarshalJSON()
	if err != nil {
		return t.errorCreator(http.StatusBadRequest, "failed to encode JSON request: %v", err)
	}
	r.Header.SetMethod(t.method)
	r.SetRequestURI(t.pathTemplate)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(t.ownerHeader, request.OwnerID)
	r.SetBody(body)
	return
}

// DecodeResponse method for decoding response on client side
func (t *saveClientTransport) DecodeResponse(ctx context.Context, r *fasthttp.Response) (response models.SaveResponse, err error) {
	if r.StatusCode() != http.StatusOK {
		err = t.errorProcessor.Decode(r)
		return
	}
	if err = response.UnmarshalJSON(r.Body()); err != nil {
		err = t.errorCreator(http.StatusInternalServerError, "failed to decode JSON response: %v", err)
	}
	return
}

// NewSaveClientTransport the transport creator for http requests
func NewSaveClientTransport(
	errorProcessor ErrorProcessor,
	errorCreator ErrorCreator,
	pathTemplate string,
	method string,
	ownerHeader string,
) SaveClientTransport {
	if ownerHeader == "" {
		ownerHeader = DefaultOwnerHeader
	}
	return &saveClientTransport{
		errorProcessor: errorProcessor,
		errorCreator:   errorCreator,
		pathTemplate:   pathTemplate,
		method:         method,
		ownerHeader:    ownerHeader,
	}
}

// QueryClientTransport transport interface
type QueryClientTransport interface {
	EncodeRequest(ctx context.Context, r *fasthttp.Request, request *models.QueryRequest) (err error)
	DecodeResponse(ctx context.Context, r *fasthttp.Response) (response models.QueryResponse, err error)
}

type queryClientTransport struct {
	errorProcessor ErrorProcessor
	errorCreator   ErrorCreator
	pathTemplate   string
	method         string
	ownerHeader    string
}

// EncodeRequest method for encoding requests on client side
func (t *queryClientTransport) EncodeRequest(ctx context.Context, r *fasthttp.Request, request *models.QueryRequest) (err error) {
	r.Header.SetMethod(t.method)
	r.SetRequestURI(t.pathTemplate)
	r.URI().QueryArgs().Set("ticker", request.Ticker)
	r.Header.Set(t.ownerHeader, request.OwnerID)
	return
}

// DecodeResponse method for decoding response on client side
func (t *queryClientTransport) DecodeResponse(ctx context.Context, r *fasthttp.Response) (response models.QueryResponse, err error) {
	if r.StatusCode() != http.StatusOK {
		err = t.errorProcessor.Decode(r)
		return
	}
	if err = response.UnmarshalJSON(r.Body()); err != nil {
		err = t.errorCreator(http.StatusInternalServerError, "failed to decode JSON response: %v", err)
	}
	return
}

// NewQueryClientTransport the transport creator for http requests
func NewQueryClientTransport(
	errorProcessor ErrorProcessor,
	errorCreator ErrorCreator,
	pathTemplate string,
	method string,
	ownerHeader string,
) QueryClientTransport {
	if ownerHeader == "" {
		ownerHeader = DefaultOwnerHeader
	}
	return &queryClientTransport{
		errorProcessor: errorProcessor,
		errorCreator:   errorCreator,
		pathTemplate:   pathTemplate,
		method:         method,
		ownerHeader:    ownerHeader,
	}
}
