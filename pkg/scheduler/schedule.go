package scheduler

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLookbackDays is used for watches that leave lookback_days unset.
const DefaultLookbackDays = 7

// Schedule is the content of the schedule file.
type Schedule struct {
	// Cron is a standard five field expression or a descriptor such as @daily,
	// evaluated in UTC.
	Cron    string  `yaml:"cron"`
	Watches []Watch `yaml:"watches"`
}

// Watch is one ticker refreshed on behalf of one owner.
type Watch struct {
	Owner        string `yaml:"owner"`
	Ticker       string `yaml:"ticker"`
	LookbackDays int    `yaml:"lookback_days"`
}

// LoadSchedule reads a YAML schedule from path.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("read schedule: %w", err)
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes and validates a YAML schedule.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("parse schedule: %w", err)
	}
	if s.Cron == "" {
		return Schedule{}, errors.New("schedule: cron is required")
	}
	for i := range s.Watches {
		w := &s.Watches[i]
		if w.Owner == "" || w.Ticker == "" {
			return Schedule{}, fmt.Errorf("schedule: watch %d needs owner and ticker", i)
		}
		if w.LookbackDays < 0 {
			return Schedule{}, fmt.Errorf("schedule: watch %d has negative lookback_days", i)
		}
		if w.LookbackDays == 0 {
			w.LookbackDays = DefaultLookbackDays
		}
	}
	return s, nil
}
