package pipeline

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"

	"github.com/pricebars/pkg/models"
)

// Reporter receives the outcome of every run. It is the only place a run's
// result goes; the caller that triggered it never sees it.
type Reporter interface {
	Report(o Outcome)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(o Outcome)

func (f ReporterFunc) Report(o Outcome) { f(o) }

type logReporter struct {
	logger log.Logger
}

// NewLogReporter writes one log line per run.
func NewLogReporter(logger log.Logger) Reporter {
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(o Outcome) {
	kv := []interface{}{
		"owner", o.Request.OwnerID,
		"ticker", o.Request.Ticker,
		"start", o.Request.Start,
		"end", o.Request.End,
		"pages", o.Pages,
		"candidates", o.Candidates,
		"fresh", o.Fresh,
		"inserted", o.Inserted,
		"elapsed", o.Elapsed,
	}
	if o.Err != nil {
		kv = append([]interface{}{"msg", "ingestion failed", "state", o.FailedAt, "kind", models.ErrorKind(o.Err), "err", o.Err}, kv...)
		_ = level.Error(r.logger).Log(kv...)
		return
	}
	kv = append([]interface{}{"msg", "ingestion complete"}, kv...)
	_ = level.Info(r.logger).Log(kv...)
}

// instrumentingReporter counts runs and persisted bars before handing the
// outcome on.
type instrumentingReporter struct {
	runCount    metrics.Counter
	runDuration metrics.Histogram
	barCount    metrics.Counter
	next        Reporter
}

// NewInstrumentingReporter records run metrics labelled by "state" and "error".
func NewInstrumentingReporter(runCount metrics.Counter, runDuration metrics.Histogram, barCount metrics.Counter, next Reporter) Reporter {
	return &instrumentingReporter{
		runCount:    runCount,
		runDuration: runDuration,
		barCount:    barCount,
		next:        next,
	}
}

func (r *instrumentingReporter) Report(o Outcome) {
	labels := []string{
		"state", o.State.String(),
		"error", models.ErrorKind(o.Err),
	}
	r.runCount.With(labels...).Add(1)
	r.runDuration.With(labels...).Observe(o.Elapsed.Seconds())
	if o.Inserted > 0 {
		r.barCount.Add(float64(o.Inserted))
	}
	if r.next != nil {
		r.next.Report(o)
	}
}
