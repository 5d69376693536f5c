// Package sampler derives CPU utilization samples from raw counter deltas.
package sampler

import (
	"context"
	"errors"
	"time"

	"github.com/danpilch/sampled/pkg/procstat"
)

// ErrStaleCounters reports that no counter time elapsed between the two
// readings of a capture. The sample returned alongside it is still valid
// and carries zero utilization.
var ErrStaleCounters = errors.New("cpu counters did not advance")

// Sample is one derived utilization measurement. Utilization is the
// fraction of elapsed time the CPU was busy, in [0, 1].
type Sample struct {
	Time        time.Time
	Utilization float64
}

// Sampler computes utilization from two counter readings taken one
// measurement interval apart.
type Sampler struct {
	src      procstat.Source
	interval time.Duration
	wait     func(context.Context, time.Duration) error
	now      func() time.Time
}

// New creates a sampler over the given counter source. A non-positive
// interval defaults to one second.
func New(src procstat.Source, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sampler{
		src:      src,
		interval: interval,
		wait:     sleepCtx,
		now:      time.Now,
	}
}

// Interval returns the measurement interval.
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Capture blocks for one measurement interval and returns the utilization
// over that window. If the counters did not advance at all, the returned
// sample has zero utilization and the error is ErrStaleCounters. A
// cancelled context aborts the wait and discards the first reading, so no
// torn measurement is ever produced.
func (s *Sampler) Capture(ctx context.Context) (Sample, error) {
	before, err := s.src.Read()
	if err != nil {
		return Sample{}, err
	}

	if err := s.wait(ctx, s.interval); err != nil {
		return Sample{}, err
	}

	after, err := s.src.Read()
	if err != nil {
		return Sample{}, err
	}

	sample := Sample{Time: s.now()}
	totalDelta := after.Total() - before.Total()
	if totalDelta == 0 {
		return sample, ErrStaleCounters
	}

	idleDelta := after.IdleTotal() - before.IdleTotal()
	sample.Utilization = float64(totalDelta-idleDelta) / float64(totalDelta)
	return sample, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
