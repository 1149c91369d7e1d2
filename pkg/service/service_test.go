package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/pricebars/pkg/models"
	"github.com/pricebars/pkg/pipeline"
	"github.com/pricebars/pkg/provider"
	"github.com/pricebars/pkg/storage"
)

const (
	testHost      = "http://pricebars.test"
	uriPathSave   = "/api/save"
	uriPathSaved  = "/api/saved"
	jan1Millis    = int64(1704067200000)
	dayMillis     = int64(86400000)
	providerOwner = "alice"
)

func providerDoc(ticker string, days int) string {
	var results []string
	for i := 0; i < days; i++ {
		results = append(results, fmt.Sprintf(`{"t":%d,"o":%d,"c":%d,"h":%d,"l":%d}`,
			jan1Millis+int64(i)*dayMillis, 10+i, 11+i, 12+i, 9+i))
	}
	return fmt.Sprintf(`{"ticker":%q,"status":"OK","results":[%s]}`, ticker, strings.Join(results, ","))
}

func serve(t *testing.T, handler fasthttp.RequestHandler) func(string) (net.Conn, error) {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })
	return func(string) (net.Conn, error) { return ln.Dial() }
}

type harness struct {
	client   Service
	outcomes chan pipeline.Outcome
}

func (h *harness) wait(t *testing.T) pipeline.Outcome {
	t.Helper()
	select {
	case o := <-h.outcomes:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("ingestion did not finish")
		return pipeline.Outcome{}
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	providerDial := serve(t, func(ctx *fasthttp.RequestCtx) {
		if strings.Contains(string(ctx.Path()), "/ticker/AAPL/") {
			ctx.SetContentType("application/json")
			ctx.SetBodyString(providerDoc("AAPL", 3))
			return
		}
		ctx.SetStatusCode(http.StatusNotFound)
		ctx.SetBodyString(`{"status":"NOT_FOUND"}`)
	})

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"), 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := &harness{outcomes: make(chan pipeline.Outcome, 8)}
	pool := pipeline.NewPool(2)
	t.Cleanup(pool.Close)
	orchestrator := pipeline.New(pipeline.Option{
		Fetcher: pipeline.ProviderFetcher(provider.NewFetcher(provider.Option{
			BaseURL: "http://provider.test",
			APIKey:  "secret",
			Timeout: time.Second,
			Dial:    providerDial,
		})),
		Store:    store,
		Pool:     pool,
		Reporter: pipeline.ReporterFunc(func(o pipeline.Outcome) { h.outcomes <- o }),
	})
	t.Cleanup(func() { _ = orchestrator.Close(context.Background()) })

	svc := NewService(orchestrator, store)
	svc = NewLoggingMiddleware(log.NewNopLogger(), svc)

	errorProcessor := NewErrorProcessor(http.StatusInternalServerError, "internal error")
	router := MakeFastHTTPRouter([]*HandlerSettings{
		{
			Path:    uriPathSave,
			Method:  http.MethodPost,
			Handler: NewSaveServer(NewSaveTransport(NewError, ""), svc, errorProcessor),
		},
		{
			Path:    uriPathSaved,
			Method:  http.MethodGet,
			Handler: NewQueryServer(NewQueryTransport(NewError, ""), svc, errorProcessor),
		},
	})

	serviceDial := serve(t, router.Handler)
	h.client = NewClient(
		&fasthttp.HostClient{Addr: "pricebars.test", Dial: serviceDial},
		NewSaveClientTransport(errorProcessor, NewError, testHost+uriPathSave, http.MethodPost, ""),
		NewQueryClientTransport(errorProcessor, NewError, testHost+uriPathSaved, http.MethodGet, ""),
	)
	return h
}

func saveRequest(owner, ticker string, start, end models.Date) *models.SaveRequest {
	return &models.SaveRequest{OwnerID: owner, Ticker: ticker, Start: start, End: end}
}

func TestService_SaveThenQuery(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	jan1, jan3 := models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 3)

	_, err := h.client.Save(ctx, saveRequest(providerOwner, "AAPL", jan1, jan3))
	require.NoError(t, err)

	o := h.wait(t)
	require.Equal(t, pipeline.Done, o.State, "err: %v", o.Err)
	assert.Equal(t, int64(3), o.Inserted)

	res, err := h.client.Query(ctx, &models.QueryRequest{OwnerID: providerOwner, Ticker: "AAPL"})
	require.NoError(t, err)
	require.Len(t, res.Data, 3)
	assert.Equal(t, jan1, res.Data[0].Date)
	assert.Equal(t, 10.0, res.Data[0].Open)
	assert.Equal(t, 11.0, res.Data[0].Close)
	assert.Equal(t, 12.0, res.Data[0].High)
	assert.Equal(t, 9.0, res.Data[0].Low)
	assert.Equal(t, jan3, res.Data[2].Date)

	// another owner sees nothing
	res, err = h.client.Query(ctx, &models.QueryRequest{OwnerID: "bob", Ticker: "AAPL"})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}

func TestService_SaveTwiceKeepsOneRowPerDate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := saveRequest(providerOwner, "AAPL", models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 3))

	_, err := h.client.Save(ctx, req)
	require.NoError(t, err)
	require.Equal(t, pipeline.Done, h.wait(t).State)

	_, err = h.client.Save(ctx, req)
	require.NoError(t, err)
	o := h.wait(t)
	require.Equal(t, pipeline.Done, o.State)
	assert.Equal(t, 0, o.Fresh)
	assert.Equal(t, int64(0), o.Inserted)

	res, err := h.client.Query(ctx, &models.QueryRequest{OwnerID: providerOwner, Ticker: "AAPL"})
	require.NoError(t, err)
	assert.Len(t, res.Data, 3)
}

func TestService_UnknownTickerIsNotReportedToCaller(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.client.Save(ctx, saveRequest(providerOwner, "ZZZZ", models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 3)))
	require.NoError(t, err)

	o := h.wait(t)
	assert.Equal(t, pipeline.Failed, o.State)
	assert.Equal(t, pipeline.Fetching, o.FailedAt)
	var unknown *models.UnknownTickerError
	assert.ErrorAs(t, o.Err, &unknown)

	res, err := h.client.Query(ctx, &models.QueryRequest{OwnerID: providerOwner, Ticker: "ZZZZ"})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}

func TestService_InvalidDateRange(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.Save(context.Background(), saveRequest(providerOwner, "AAPL", models.NewDate(2024, 1, 5), models.NewDate(2024, 1, 1)))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.Contains(t, err.Error(), "2024-01-05")

	select {
	case o := <-h.outcomes:
		t.Fatalf("unexpected ingestion: %+v", o)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestService_MissingOwnerOrTicker(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	jan1 := models.NewDate(2024, 1, 1)

	_, err := h.client.Save(ctx, saveRequest("", "AAPL", jan1, jan1))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	_, err = h.client.Save(ctx, saveRequest(providerOwner, "", jan1, jan1))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	_, err = h.client.Query(ctx, &models.QueryRequest{OwnerID: providerOwner})
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestSaveTransport_DecodeRequest(t *testing.T) {
	tr := NewSaveTransport(NewError, "X-User")

	var req fasthttp.Request
	req.Header.Set("X-User", "carol")
	req.SetBodyString(`{"ticker":"MSFT","start":"2024-02-01","end":"2024-02-29"}`)
	got, err := tr.DecodeRequest(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, models.SaveRequest{
		OwnerID: "carol",
		Ticker:  "MSFT",
		Start:   models.NewDate(2024, 2, 1),
		End:     models.NewDate(2024, 2, 29),
	}, got)

	for _, body := range []string{
		`{"ticker":"MSFT","start":"yesterday","end":"2024-02-29"}`,
		`{"ticker":"MSFT","end":"2024-02-29"}`,
		`not json`,
	} {
		req.SetBodyString(body)
		_, err = tr.DecodeRequest(context.Background(), &req)
		assert.Equal(t, http.StatusBadRequest, StatusCode(err), body)
	}
}
