package logger

import (
	"fmt"
	"sync"
	"time"
)

// ProgressReporter logs progress of a long sequential stage, every `step`
// items or every `interval`, whichever comes first, and on completion.
type ProgressReporter struct {
	mu          sync.Mutex
	total       int
	current     int
	step        int
	interval    time.Duration
	description string
	startTime   time.Time
	lastUpdate  time.Time
	logger      *Logger
}

// NewProgressReporter creates a reporter that logs every 10 items or 5 seconds
func NewProgressReporter(total int, description string) *ProgressReporter {
	return NewProgressReporterWithStep(total, description, 10, 5*time.Second)
}

// NewProgressReporterWithStep creates a reporter with explicit cadence
func NewProgressReporterWithStep(total int, description string, step int, interval time.Duration) *ProgressReporter {
	now := time.Now()
	return &ProgressReporter{
		total:       total,
		step:        step,
		interval:    interval,
		description: description,
		startTime:   now,
		lastUpdate:  now,
		logger:      GetLogger().WithField("component", "progress"),
	}
}

// Update increments the progress counter and reports when due
func (pr *ProgressReporter) Update(increment int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.current += increment
	now := time.Now()

	stepDue := pr.step > 0 && pr.current%pr.step == 0
	if stepDue || now.Sub(pr.lastUpdate) >= pr.interval || pr.current >= pr.total {
		pr.reportProgress()
		pr.lastUpdate = now
	}
}

// Complete marks the progress as complete and reports final status
func (pr *ProgressReporter) Complete() {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.current == pr.total {
		return
	}
	pr.current = pr.total
	pr.reportProgress()
}

func (pr *ProgressReporter) percentage() float64 {
	if pr.total == 0 {
		return 100
	}
	return float64(pr.current) / float64(pr.total) * 100
}

// reportProgress must be called with lock held
func (pr *ProgressReporter) reportProgress() {
	percentage := pr.percentage()
	elapsed := time.Since(pr.startTime)

	var eta string
	if pr.current > 0 && pr.current < pr.total {
		avgTimePerItem := elapsed / time.Duration(pr.current)
		remaining := time.Duration(pr.total-pr.current) * avgTimePerItem
		eta = fmt.Sprintf(" (ETA: %s)", remaining.Round(time.Second))
	}

	pr.logger.WithFields(map[string]interface{}{
		"current":     pr.current,
		"total":       pr.total,
		"elapsed":     elapsed.Round(time.Millisecond).String(),
		"description": pr.description,
	}).Info(fmt.Sprintf("%s: %d/%d (%.1f%%)%s", pr.description, pr.current, pr.total, percentage, eta))
}
