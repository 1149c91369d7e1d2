// Package service http errors
// CODE GENERATED AUTOMATICALLY
// THIS FILE COULD BE EDITED BY HANDS
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/pricebars/pkg/models"
)

// ErrorCreator builds an error carrying an http status code
type ErrorCreator func(status int, format string, v ...interface{}) error

// ErrorProcessor moves errors between the service and the wire
type ErrorProcessor interface {
	Encode(ctx context.Context, r *fasthttp.Response, err error)
	Decode(r *fasthttp.Response) error
}

type httpError struct {
	Code    int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

// StatusCode returns the http status code of the error
func (e *httpError) StatusCode() int {
	return e.Code
}

// NewError ...
func NewError(status int, format string, v ...interface{}) error {
	return &httpError{
		Code:    status,
		Message: fmt.Sprintf(format, v...),
	}
}

// StatusCode returns the http status code carried by err, or 0 if it has none.
func StatusCode(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

type errorProcessor struct {
	defaultCode    int
	defaultMessage string
}

// Encode writes err as a json body. Request validation errors are reported
// with their own text, everything else hides behind the default message.
func (e *errorProcessor) Encode(ctx context.Context, r *fasthttp.Response, err error) {
	code, message := e.defaultCode, e.defaultMessage

	var he *httpError
	switch {
	case errors.As(err, &he):
		code, message = he.Code, he.Message
	case isValidation(err):
		code, message = http.StatusBadRequest, err.Error()
	}

	body, _ := models.SaveResponse{Error: true, ErrorText: message}.MarshalJSON()
	r.Header.Set("Content-Type", "application/json")
	r.SetStatusCode(code)
	r.SetBody(body)
}

// Decode turns a non 200 response back into an error
func (e *errorProcessor) Decode(r *fasthttp.Response) error {
	var body models.SaveResponse
	if err := body.UnmarshalJSON(r.Body()); err != nil || body.ErrorText == "" {
		return &httpError{Code: r.StatusCode(), Message: string(r.Body())}
	}
	return &httpError{Code: r.StatusCode(), Message: body.ErrorText}
}

func isValidation(err error) bool {
	switch models.ErrorKind(err) {
	case "invalid_date_range", "invalid_request":
		return true
	}
	return false
}

// NewErrorProcessor ...
func NewErrorProcessor(defaultCode int, defaultMessage string) ErrorProcessor {
	return &errorProcessor{
		defaultCode:    defaultCode,
		defaultMessage: defaultMessage,
	}
}
