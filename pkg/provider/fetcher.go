package provider

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/valyala/fasthttp"

	"github.com/pricebars/pkg/models"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxPages = 10
	aggregatesPath  = "/v2/aggs/ticker/%s/range/1/day/%s/%s"
)

// Option configures a Fetcher.
type Option struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	MaxPages int
	// Dial overrides the client dialer, mostly for in-memory tests.
	Dial   func(addr string) (net.Conn, error)
	Logger log.Logger
}

// Fetcher pulls daily aggregates from the market-data provider.
type Fetcher struct {
	baseURL  string
	base     *url.URL
	apiKey   string
	timeout  time.Duration
	maxPages int
	cli      *fasthttp.Client
	logger   log.Logger
}

// NewFetcher creates a Fetcher. The API key is kept on the fetcher and sent
// as the apiKey query parameter on every request.
func NewFetcher(opt Option) *Fetcher {
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxPages := opt.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	base, err := url.Parse(opt.BaseURL)
	if err != nil {
		base = &url.URL{}
	}
	return &Fetcher{
		baseURL:  opt.BaseURL,
		base:     base,
		apiKey:   opt.APIKey,
		logger:   logger,
		timeout:  timeout,
		maxPages: maxPages,
		cli: &fasthttp.Client{
			Name:         "pricebars",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			Dial:         opt.Dial,
		},
	}
}

// Fetch returns the pages of daily aggregates for ticker between start and
// end. Nothing is requested until the first call to Next.
func (f *Fetcher) Fetch(ticker string, start, end models.Date) *Pages {
	return &Pages{
		f:      f,
		ticker: ticker,
		next:   f.baseURL + fmt.Sprintf(aggregatesPath, url.PathEscape(ticker), start, end),
	}
}

// Pages iterates over the raw documents of one fetch. It is not restartable.
type Pages struct {
	f       *Fetcher
	ticker  string
	next    string
	fetched int
	page    []byte
	err     error
}

// Next fetches the following page. It returns false when there are no more
// pages or when a request failed; Err tells the two apart.
func (p *Pages) Next(ctx context.Context) bool {
	if p.err != nil || p.next == "" {
		return false
	}
	if p.fetched >= p.f.maxPages {
		return false
	}
	if err := ctx.Err(); err != nil {
		p.err = &models.FetchError{Ticker: p.ticker, Err: err}
		return false
	}

	body, err := p.f.get(ctx, p.ticker, p.next)
	if err != nil {
		p.err = err
		return false
	}
	p.fetched++
	p.page = body
	p.next = ""

	var cursor models.PageCursor
	if err := cursor.UnmarshalJSON(body); err == nil && cursor.NextURL != "" {
		next, ok := p.f.resolve(cursor.NextURL)
		if !ok {
			_ = level.Warn(p.f.logger).Log("msg", "not following next_url outside the provider", "ticker", p.ticker, "next_url", cursor.NextURL)
			return true
		}
		p.next = next
	}
	return true
}

// resolve returns the absolute form of a next_url. The API key is attached to
// every request, so only URLs on the configured provider origin are followed.
func (f *Fetcher) resolve(next string) (string, bool) {
	u, err := url.Parse(next)
	if err != nil {
		return "", false
	}
	u = f.base.ResolveReference(u)
	if !strings.EqualFold(u.Scheme, f.base.Scheme) || !strings.EqualFold(u.Host, f.base.Host) {
		return "", false
	}
	return u.String(), true
}

// Page returns the document fetched by the last successful Next.
func (p *Pages) Page() []byte { return p.page }

func (p *Pages) Err() error { return p.err }

func (f *Fetcher) get(ctx context.Context, ticker, addr string) ([]byte, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, &models.FetchError{Ticker: ticker, Err: err}
	}
	q := u.Query()
	q.Set("apiKey", f.apiKey)
	u.RawQuery = q.Encode()

	req, res := fasthttp.AcquireRequest(), fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(res)
	}
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(u.String())
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// fasthttp has no context support; the request keeps running in the
	// background until its deadline and only then gives back req and res.
	done := make(chan error, 1)
	go func() { done <- f.cli.DoDeadline(req, res, deadline) }()
	select {
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		return nil, &models.FetchError{Ticker: ticker, Err: ctx.Err()}
	case err = <-done:
	}
	defer release()
	if err != nil {
		return nil, &models.FetchError{Ticker: ticker, Err: err}
	}

	status := res.StatusCode()
	switch {
	case status >= 400 && status < 500:
		return nil, &models.UnknownTickerError{
			Ticker: ticker,
			Reason: fmt.Sprintf("provider rejected request with status %d", status),
		}
	case status < 200 || status >= 300:
		return nil, &models.FetchError{Ticker: ticker, Err: fmt.Errorf("unexpected status %d", status)}
	}

	body := make([]byte, len(res.Body()))
	copy(body, res.Body())
	return body, nil
}
