package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricebars/pkg/models"
)

// fakePages serves canned documents, then err.
type fakePages struct {
	docs  [][]byte
	err   error
	i     int
	page  []byte
	block chan struct{}
}

func (p *fakePages) Next(ctx context.Context) bool {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			p.err = ctx.Err()
			return false
		}
	}
	if p.i >= len(p.docs) {
		return false
	}
	p.page = p.docs[p.i]
	p.i++
	return true
}

func (p *fakePages) Page() []byte { return p.page }

func (p *fakePages) Err() error { return p.err }

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	pages func() *fakePages
}

func (f *fakeFetcher) Fetch(string, models.Date, models.Date) Pages {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.pages()
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func docs(s ...string) func() *fakePages {
	return func() *fakePages {
		p := &fakePages{}
		for _, d := range s {
			p.docs = append(p.docs, []byte(d))
		}
		return p
	}
}

// memStore keeps one bar per key, like the real stores.
type memStore struct {
	mu        sync.Mutex
	bars      map[models.Key]models.PriceBar
	order     []models.Key
	saveCalls [][]models.PriceBar
	lookupErr error
	saveErr   error
}

func newMemStore(seed ...models.PriceBar) *memStore {
	s := &memStore{bars: map[models.Key]models.PriceBar{}}
	for _, b := range seed {
		s.bars[b.Key()] = b
		s.order = append(s.order, b.Key())
	}
	return s
}

func (s *memStore) ExistingDates(_ context.Context, ownerID, ticker string, dates []models.Date) ([]models.Date, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	var out []models.Date
	for _, d := range dates {
		if _, ok := s.bars[models.Key{OwnerID: ownerID, Ticker: ticker, Date: d}]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memStore) SaveAll(_ context.Context, bars []models.PriceBar) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls = append(s.saveCalls, bars)
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	var n int64
	for _, b := range bars {
		if _, ok := s.bars[b.Key()]; ok {
			continue
		}
		s.bars[b.Key()] = b
		s.order = append(s.order, b.Key())
		n++
	}
	return n, nil
}

func (s *memStore) rows() []models.PriceBar {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PriceBar, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.bars[k])
	}
	return out
}

func (s *memStore) saves() [][]models.PriceBar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]models.PriceBar(nil), s.saveCalls...)
}

func newTestOrchestrator(t *testing.T, f Fetcher, st Store) (*Orchestrator, chan Outcome) {
	t.Helper()
	outcomes := make(chan Outcome, 16)
	pool := NewPool(2)
	o := New(Option{
		Fetcher:  f,
		Store:    st,
		Pool:     pool,
		Reporter: ReporterFunc(func(out Outcome) { outcomes <- out }),
		Timeout:  5 * time.Second,
	})
	t.Cleanup(func() {
		_ = o.Close(context.Background())
		pool.Close()
	})
	return o, outcomes
}

func waitOutcome(t *testing.T, outcomes chan Outcome) Outcome {
	t.Helper()
	select {
	case out := <-outcomes:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome reported")
		return Outcome{}
	}
}

const threeBars = `{"ticker":"AAPL","results":[
	{"t":1704067200000,"o":1,"c":2,"h":3,"l":0.5},
	{"t":1704153600000,"o":2,"c":3,"h":4,"l":1.5},
	{"t":1704240000000,"o":3,"c":4,"h":5,"l":2.5}
]}`

func request(ticker string) models.IngestionRequest {
	return models.IngestionRequest{
		OwnerID: "alice",
		Ticker:  ticker,
		Start:   models.NewDate(2024, 1, 1),
		End:     models.NewDate(2024, 1, 3),
	}
}

func TestSave_PersistsOnlyNewDates(t *testing.T) {
	st := newMemStore(models.PriceBar{OwnerID: "alice", Ticker: "AAPL", Date: models.NewDate(2024, 1, 2), Open: 2})
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, st)

	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)

	require.NoError(t, out.Err)
	assert.Equal(t, Done, out.State)
	assert.Equal(t, 3, out.Candidates)
	assert.Equal(t, 2, out.Fresh)
	assert.EqualValues(t, 2, out.Inserted)

	saves := st.saves()
	require.Len(t, saves, 1)
	require.Len(t, saves[0], 2)
	assert.Equal(t, models.NewDate(2024, 1, 1), saves[0][0].Date)
	assert.Equal(t, models.NewDate(2024, 1, 3), saves[0][1].Date)
}

func TestSave_InvalidDateRangeIsSynchronous(t *testing.T) {
	f := &fakeFetcher{pages: docs(threeBars)}
	o, outcomes := newTestOrchestrator(t, f, newMemStore())

	req := request("AAPL")
	req.Start, req.End = models.NewDate(2024, 2, 1), models.NewDate(2024, 1, 1)
	err := o.Save(req)

	var rangeErr *models.InvalidDateRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, req.Start, rangeErr.Start)
	assert.Zero(t, f.Calls())
	assert.Empty(t, outcomes)
}

func TestSave_MissingOwnerOrTicker(t *testing.T) {
	o, _ := newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, newMemStore())

	req := request("")
	assert.ErrorIs(t, o.Save(req), models.ErrMissingTicker)

	req = request("AAPL")
	req.OwnerID = ""
	assert.ErrorIs(t, o.Save(req), models.ErrMissingOwner)
}

func TestSave_ReturnsBeforeRunFinishes(t *testing.T) {
	block := make(chan struct{})
	f := &fakeFetcher{pages: func() *fakePages {
		p := docs(threeBars)()
		p.block = block
		return p
	}}
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, f, st)

	require.NoError(t, o.Save(request("AAPL")))
	assert.Empty(t, outcomes, "run finished before Save returned")
	assert.Empty(t, st.saves())

	close(block)
	out := waitOutcome(t, outcomes)
	assert.Equal(t, Done, out.State)
}

func TestSave_UnknownTickerFromProvider(t *testing.T) {
	f := &fakeFetcher{pages: func() *fakePages {
		return &fakePages{err: &models.UnknownTickerError{Ticker: "ZZZZ"}}
	}}
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, f, st)

	require.NoError(t, o.Save(request("ZZZZ")))
	out := waitOutcome(t, outcomes)

	assert.Equal(t, Failed, out.State)
	assert.Equal(t, Fetching, out.FailedAt)
	var unknown *models.UnknownTickerError
	require.True(t, errors.As(out.Err, &unknown))
	assert.Equal(t, "ZZZZ", unknown.Ticker)
	assert.Empty(t, st.saves())
}

func TestSave_EmptyOrMissingResults(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":   `{"results":[]}`,
		"missing": `{"status":"OK"}`,
	} {
		t.Run(name, func(t *testing.T) {
			st := newMemStore()
			o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(doc)}, st)

			require.NoError(t, o.Save(request("AAPL")))
			out := waitOutcome(t, outcomes)

			var unknown *models.UnknownTickerError
			assert.True(t, errors.As(out.Err, &unknown))
			assert.Equal(t, Parsing, out.FailedAt)
			assert.Empty(t, st.saves())
		})
	}
}

func TestSave_ParseError(t *testing.T) {
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(`{"results":[{"t":"x"}]}`)}, st)

	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)

	var parseErr *models.ParseError
	assert.True(t, errors.As(out.Err, &parseErr))
	assert.Equal(t, Parsing, out.FailedAt)
	assert.Empty(t, st.saves())
}

func TestSave_FlattensPages(t *testing.T) {
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(
		`{"results":[{"t":1704067200000,"o":1}]}`,
		`{"results":[{"t":1704153600000,"o":2},{"t":1704240000000,"o":3}]}`,
	)}, st)

	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)

	require.NoError(t, out.Err)
	assert.Equal(t, 2, out.Pages)
	assert.EqualValues(t, 3, out.Inserted)
	assert.Len(t, st.rows(), 3)
}

func TestSave_StorageFailures(t *testing.T) {
	boom := errors.New("disk full")

	st := newMemStore()
	st.lookupErr = boom
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, st)
	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)
	var storageErr *models.StorageError
	require.True(t, errors.As(out.Err, &storageErr))
	assert.Equal(t, "dedup", storageErr.Op)
	assert.Equal(t, Deduplicating, out.FailedAt)
	assert.Empty(t, st.saves())

	st = newMemStore()
	st.saveErr = boom
	o, outcomes = newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, st)
	require.NoError(t, o.Save(request("AAPL")))
	out = waitOutcome(t, outcomes)
	require.True(t, errors.As(out.Err, &storageErr))
	assert.Equal(t, "persist", storageErr.Op)
	assert.Equal(t, Persisting, out.FailedAt)
	assert.ErrorIs(t, out.Err, boom)
}

func TestSave_TwiceKeepsOneRowPerDate(t *testing.T) {
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, st)

	require.NoError(t, o.Save(request("AAPL")))
	require.NoError(t, o.Save(request("AAPL")))
	first, second := waitOutcome(t, outcomes), waitOutcome(t, outcomes)

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.EqualValues(t, 3, first.Inserted+second.Inserted)
	assert.Len(t, st.rows(), 3)
}

func TestSave_AllDatesKnownSkipsWrite(t *testing.T) {
	st := newMemStore()
	o, outcomes := newTestOrchestrator(t, &fakeFetcher{pages: docs(threeBars)}, st)

	require.NoError(t, o.Save(request("AAPL")))
	waitOutcome(t, outcomes)
	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)

	require.NoError(t, out.Err)
	assert.Zero(t, out.Fresh)
	assert.Len(t, st.saves(), 1, "empty batch must not reach the store")
}

func TestClose_CancelsInFlightRuns(t *testing.T) {
	f := &fakeFetcher{pages: func() *fakePages {
		p := docs(threeBars)()
		p.block = make(chan struct{})
		return p
	}}
	o, outcomes := newTestOrchestrator(t, f, newMemStore())
	require.NoError(t, o.Save(request("AAPL")))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, o.Close(ctx), context.DeadlineExceeded)

	out := waitOutcome(t, outcomes)
	assert.Equal(t, Failed, out.State)
	assert.ErrorIs(t, out.Err, context.Canceled)

	assert.ErrorIs(t, o.Save(request("AAPL")), ErrClosed)
}

func TestRunTimeout(t *testing.T) {
	f := &fakeFetcher{pages: func() *fakePages {
		p := docs(threeBars)()
		p.block = make(chan struct{})
		return p
	}}
	outcomes := make(chan Outcome, 1)
	o := New(Option{
		Fetcher:  f,
		Store:    newMemStore(),
		Reporter: ReporterFunc(func(out Outcome) { outcomes <- out }),
		Timeout:  20 * time.Millisecond,
	})
	defer o.Close(context.Background())

	require.NoError(t, o.Save(request("AAPL")))
	out := waitOutcome(t, outcomes)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
	assert.Equal(t, Fetching, out.FailedAt)
}

func TestClose_ReleasesDefaultPoolOnly(t *testing.T) {
	o := New(Option{Fetcher: &fakeFetcher{pages: docs(threeBars)}, Store: newMemStore()})
	require.NoError(t, o.Close(context.Background()))
	assert.ErrorIs(t, o.pool.Do(context.Background(), func(context.Context) error { return nil }), ErrPoolClosed)

	shared := NewPool(1)
	defer shared.Close()
	o = New(Option{Fetcher: &fakeFetcher{pages: docs(threeBars)}, Store: newMemStore(), Pool: shared})
	require.NoError(t, o.Close(context.Background()))
	assert.NoError(t, shared.Do(context.Background(), func(context.Context) error { return nil }))
}
