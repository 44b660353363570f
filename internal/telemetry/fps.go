// Package telemetry measures frame rate over a bounded rolling window.
package telemetry

import (
	"fmt"
	"math"
	"time"
)

// DefaultCapacity is the number of most recent frames kept in the window.
const DefaultCapacity = 100

// Sample is one inter-frame measurement.
type Sample struct {
	At       time.Time
	Interval time.Duration
	Rate     float64
}

// Report summarizes the window in whole frames per second.
type Report struct {
	Latest int `json:"latest"`
	Avg    int `json:"avg"`
	Min    int `json:"min"`
	Max    int `json:"max"`
}

func (r Report) String() string {
	return fmt.Sprintf("FPS: %d (avg %d, min %d, max %d)", r.Latest, r.Avg, r.Min, r.Max)
}

// Monitor records frame timings. It is not safe for concurrent use.
type Monitor struct {
	now      func() time.Time
	capacity int
	last     time.Time
	samples  []Sample
	report   Report
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCapacity changes the window size.
func WithCapacity(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// New returns a monitor whose first interval is measured from construction.
func New(opts ...Option) *Monitor {
	m := &Monitor{now: time.Now, capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(m)
	}
	m.samples = make([]Sample, 0, m.capacity+1)
	m.last = m.now()
	return m
}

// Record measures the time since the previous call (or construction) and
// returns the updated report. If the clock has not advanced nothing is
// recorded and Latest reads zero.
func (m *Monitor) Record() Report {
	now := m.now()
	delta := now.Sub(m.last)
	m.last = now

	if delta <= 0 {
		m.report.Latest = 0
		return m.report
	}

	rate := 1000 / (float64(delta) / float64(time.Millisecond))
	m.samples = append(m.samples, Sample{At: now, Interval: delta, Rate: rate})
	if len(m.samples) > m.capacity {
		m.samples = m.samples[1:]
	}

	m.report = summarize(m.samples)
	m.report.Latest = int(math.Round(rate))
	return m.report
}

func summarize(samples []Sample) Report {
	if len(samples) == 0 {
		return Report{}
	}
	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, s := range samples {
		sum += s.Rate
		lo = math.Min(lo, s.Rate)
		hi = math.Max(hi, s.Rate)
	}
	return Report{
		Avg: int(math.Round(sum / float64(len(samples)))),
		Min: int(math.Round(lo)),
		Max: int(math.Round(hi)),
	}
}

// Report returns the most recent report.
func (m *Monitor) Report() Report { return m.report }

// Samples returns a copy of the window, oldest first.
func (m *Monitor) Samples() []Sample {
	out := make([]Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Rates returns the window's instantaneous rates, oldest first.
func (m *Monitor) Rates() []float64 {
	out := make([]float64, len(m.samples))
	for i, s := range m.samples {
		out[i] = s.Rate
	}
	return out
}

// Len returns the number of samples in the window.
func (m *Monitor) Len() int { return len(m.samples) }

// Capacity returns the window size.
func (m *Monitor) Capacity() int { return m.capacity }

// Rebase restarts the interval baseline at the current time and keeps the
// window. A loop resuming after a pause calls it so the pause is not
// measured as one long frame.
func (m *Monitor) Rebase() { m.last = m.now() }

// Reset empties the window and restarts the baseline at the current time.
func (m *Monitor) Reset() {
	m.samples = m.samples[:0]
	m.report = Report{}
	m.last = m.now()
}
