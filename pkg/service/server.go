// Package service http server
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

const requestTimeout = time.Second * 5

type saveServer struct {
	transport      SaveTransport
	service        Service
	errorProcessor ErrorProcessor
}

// ServeHTTP implements http.Handler.
func (s *saveServer) ServeHTTP(ctx *fasthttp.RequestCtx) {
	request, err := s.transport.DecodeRequest(ctx, &ctx.Request)
	if err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response, err := s.service.Save(timeoutCtx, &request)
	if err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}

	if err := s.transport.EncodeResponse(ctx, &ctx.Response, &response); err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}
}

// NewSaveServer the server creator
func NewSaveServer(transport SaveTransport, service Service, errorProcessor ErrorProcessor) fasthttp.RequestHandler {
	ls := saveServer{
		transport:      transport,
		service:        service,
		errorProcessor: errorProcessor,
	}
	return ls.ServeHTTP
}

type queryServer struct {
	transport      QueryTransport
	service        Service
	errorProcessor ErrorProcessor
}

// ServeHTTP implements http.Handler.
func (s *queryServer) ServeHTTP(ctx *fasthttp.RequestCtx) {
	request, err := s.transport.DecodeRequest(ctx, &ctx.Request)
	if err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response, err := s.service.Query(timeoutCtx, &request)
	if err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}

	if err := s.transport.EncodeResponse(ctx, &ctx.Response, &response); err != nil {
		s.errorProcessor.Encode(ctx, &ctx.Response, err)
		return
	}
}

// NewQueryServer the server creator
func NewQueryServer(transport QueryTransport, service Service, errorProcessor ErrorProcessor) fasthttp.RequestHandler {
	ls := queryServer{
		transport:      transport,
		service:        service,
		errorProcessor: errorProcessor,
	}
	return ls.ServeHTTP
}
