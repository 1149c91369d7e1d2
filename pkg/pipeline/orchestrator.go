// Package pipeline runs daily price-bar ingestions.
//
// A run moves through Validating, Fetching, Parsing, Deduplicating and
// Persisting to Done, or to Failed from any of them. Validation happens in
// the caller's goroutine; everything after it runs in the background and is
// only visible through the Reporter. Storage calls go through a bounded Pool
// so they never hold up the goroutines waiting on the provider.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/pricebars/pkg/models"
	"github.com/pricebars/pkg/provider"
)

// ErrClosed is returned by Save once the orchestrator is shutting down.
var ErrClosed = errors.New("orchestrator closed")

// Pages iterates over provider documents.
type Pages interface {
	Next(ctx context.Context) bool
	Page() []byte
	Err() error
}

// Fetcher starts a fetch of daily aggregates.
type Fetcher interface {
	Fetch(ticker string, start, end models.Date) Pages
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ticker string, start, end models.Date) Pages

func (f FetcherFunc) Fetch(ticker string, start, end models.Date) Pages {
	return f(ticker, start, end)
}

// ProviderFetcher adapts a provider.Fetcher.
func ProviderFetcher(f *provider.Fetcher) Fetcher {
	return FetcherFunc(func(ticker string, start, end models.Date) Pages {
		return f.Fetch(ticker, start, end)
	})
}

// ParseFunc turns one provider document into price bars.
type ParseFunc func(doc []byte, ticker, ownerID string) ([]models.PriceBar, error)

// Store is the part of the record store a run needs.
type Store interface {
	DateLookup
	BatchWriter
}

// Option wires an Orchestrator.
type Option struct {
	Fetcher  Fetcher
	Parse    ParseFunc
	Store    Store
	Pool     *Pool
	Reporter Reporter
	Logger   log.Logger
	// Timeout bounds a whole run. Zero means no limit besides Close.
	Timeout time.Duration
}

// Orchestrator validates ingestion requests and runs them in the background.
type Orchestrator struct {
	fetcher  Fetcher
	parse    ParseFunc
	store    Store
	pool     *Pool
	ownsPool bool
	reporter Reporter
	logger   log.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates an Orchestrator. Parse defaults to provider.Parse, the
// reporter to a log reporter and the pool to a single worker. A pool created
// here is closed by Close; a pool passed in is left to the caller.
func New(opt Option) *Orchestrator {
	logger := opt.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	parse := opt.Parse
	if parse == nil {
		parse = provider.Parse
	}
	reporter := opt.Reporter
	if reporter == nil {
		reporter = NewLogReporter(logger)
	}
	pool, ownsPool := opt.Pool, false
	if pool == nil {
		pool, ownsPool = NewPool(1), true
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		fetcher:  opt.Fetcher,
		parse:    parse,
		store:    opt.Store,
		pool:     pool,
		ownsPool: ownsPool,
		reporter: reporter,
		logger:   logger,
		timeout:  opt.Timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Save validates req and dispatches its ingestion. It returns as soon as the
// run is dispatched; only validation errors are returned to the caller.
func (o *Orchestrator) Save(req models.IngestionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()
		o.reporter.Report(o.run(req))
	}()
	return nil
}

// Close stops accepting requests and waits for in-flight runs. When ctx
// ends first, the runs are cancelled and Close returns ctx.Err().
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		o.cancel()
		<-done
		err = ctx.Err()
	}
	o.cancel()
	if o.ownsPool {
		o.pool.Close()
	}
	return err
}

type run struct {
	o       *Orchestrator
	ctx     context.Context
	state   State
	outcome Outcome
}

func (o *Orchestrator) run(req models.IngestionRequest) Outcome {
	begin := time.Now()
	ctx, cancel := o.ctx, context.CancelFunc(func() {})
	if o.timeout > 0 {
		ctx, cancel = context.WithTimeout(o.ctx, o.timeout)
	}
	defer cancel()

	r := &run{o: o, ctx: ctx, state: Validating, outcome: Outcome{Request: req}}
	err := r.execute()
	r.outcome.Elapsed = time.Since(begin)
	if err != nil {
		r.outcome.FailedAt = r.state
		r.outcome.Err = err
		r.to(Failed)
	} else {
		r.to(Done)
	}
	r.outcome.State = r.state
	return r.outcome
}

func (r *run) to(s State) {
	r.state = s
	req := r.outcome.Request
	_ = level.Debug(r.o.logger).Log("msg", "ingestion state", "owner", req.OwnerID, "ticker", req.Ticker, "state", s)
}

func (r *run) execute() error {
	req := r.outcome.Request

	r.to(Fetching)
	pages := r.o.fetcher.Fetch(req.Ticker, req.Start, req.End)
	var candidates []models.PriceBar
	for pages.Next(r.ctx) {
		r.outcome.Pages++
		r.to(Parsing)
		bars, err := r.o.parse(pages.Page(), req.Ticker, req.OwnerID)
		if err != nil {
			return err
		}
		candidates = append(candidates, bars...)
		r.to(Fetching)
	}
	if err := pages.Err(); err != nil {
		return err
	}

	r.to(Parsing)
	r.outcome.Candidates = len(candidates)
	if len(candidates) == 0 {
		return &models.UnknownTickerError{Ticker: req.Ticker, Reason: "provider returned no bars"}
	}

	r.to(Deduplicating)
	var fresh []models.PriceBar
	err := r.o.pool.Do(r.ctx, func(ctx context.Context) error {
		var err error
		fresh, err = Deduplicate(ctx, r.o.store, candidates)
		return err
	})
	if err != nil {
		return asStorageError("dedup", err)
	}
	r.outcome.Fresh = len(fresh)

	r.to(Persisting)
	var inserted int64
	err = r.o.pool.Do(r.ctx, func(ctx context.Context) error {
		var err error
		inserted, err = Persist(ctx, r.o.store, fresh)
		return err
	})
	if err != nil {
		return asStorageError("persist", err)
	}
	r.outcome.Inserted = inserted
	return nil
}

// asStorageError keeps pool and context failures in the storage class.
func asStorageError(op string, err error) error {
	var storageErr *models.StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &models.StorageError{Op: op, Err: err}
}
