// Package miniprof measures elapsed wall time around a block of code and
// reports it through a logger.
//
//	defer miniprof.Start("plan", lg).Stop()
package miniprof

import (
	"time"

	"github.com/sayotte/frontierdemo/internal/logger"
)

// Timer reports once, on the first call to Stop.
type Timer struct {
	label   string
	log     logger.Logger
	start   time.Time
	stopped bool
	now     func() time.Time
}

func Start(label string, log logger.Logger) *Timer {
	return start(label, log, time.Now)
}

func start(label string, log logger.Logger, now func() time.Time) *Timer {
	return &Timer{label: label, log: logger.OrNoop(log), start: now(), now: now}
}

// Elapsed returns the time since Start without stopping the timer.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Stop logs "<label>: <ms> ms" and returns the elapsed time. Later calls
// return the elapsed time without logging again.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	if !t.stopped {
		t.stopped = true
		t.log.Printf("%s: %.3f ms", t.label, float64(elapsed)/float64(time.Millisecond))
	}
	return elapsed
}
