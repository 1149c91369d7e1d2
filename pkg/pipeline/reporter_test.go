package pipeline

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"

	"github.com/pricebars/pkg/models"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(log.NewLogfmtLogger(&buf))

	r.Report(Outcome{Request: request("AAPL"), State: Done, Inserted: 2})
	assert.Contains(t, buf.String(), `msg="ingestion complete"`)
	assert.Contains(t, buf.String(), "ticker=AAPL")
	assert.Contains(t, buf.String(), "inserted=2")

	buf.Reset()
	r.Report(Outcome{
		Request:  request("ZZZZ"),
		State:    Failed,
		FailedAt: Fetching,
		Err:      &models.UnknownTickerError{Ticker: "ZZZZ"},
	})
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "state=fetching")
	assert.Contains(t, buf.String(), "kind=unknown_ticker")
}

// labelCounter sums every Add regardless of labels and keeps the last labels.
type labelCounter struct {
	total  *float64
	labels *[]string
	lvs    []string
}

func newLabelCounter() *labelCounter {
	return &labelCounter{total: new(float64), labels: new([]string)}
}

func (c *labelCounter) With(lvs ...string) metrics.Counter {
	return &labelCounter{total: c.total, labels: c.labels, lvs: append(append([]string(nil), c.lvs...), lvs...)}
}

func (c *labelCounter) Add(delta float64) {
	*c.total += delta
	*c.labels = c.lvs
}

func TestInstrumentingReporter(t *testing.T) {
	runs := newLabelCounter()
	bars := generic.NewCounter("bars")
	duration := generic.NewHistogram("duration", 10)

	var forwarded int
	r := NewInstrumentingReporter(runs, duration, bars, ReporterFunc(func(Outcome) { forwarded++ }))

	r.Report(Outcome{State: Done, Inserted: 3, Elapsed: time.Second})
	r.Report(Outcome{State: Failed, Err: &models.StorageError{Op: "persist", Err: errors.New("x")}})

	assert.Equal(t, 2.0, *runs.total)
	assert.Equal(t, []string{"state", "failed", "error", "storage"}, *runs.labels)
	assert.Equal(t, 3.0, bars.Value())
	assert.Equal(t, 2, forwarded)
}
