package pipeline

import (
	"time"

	"github.com/pricebars/pkg/models"
)

// State is a step of one ingestion run.
type State int

const (
	Validating State = iota
	Fetching
	Parsing
	Deduplicating
	Persisting
	Done
	Failed
)

var stateNames = [...]string{
	Validating:    "validating",
	Fetching:      "fetching",
	Parsing:       "parsing",
	Deduplicating: "deduplicating",
	Persisting:    "persisting",
	Done:          "done",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool { return s == Done || s == Failed }

// Outcome is what one run reports once it reaches Done or Failed.
type Outcome struct {
	Request models.IngestionRequest
	State   State
	// FailedAt is the last non-terminal state of a failed run.
	FailedAt   State
	Pages      int
	Candidates int
	Fresh      int
	Inserted   int64
	Err        error
	Elapsed    time.Duration
}
