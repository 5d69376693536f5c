// Package pipeline wires the sampler, queue and sample log into the
// two-task collection loop and owns the shutdown protocol.
//
// The producer captures one sample per interval and pushes it into the
// queue; the consumer pops and durably appends. A cancelled context moves
// the pipeline from RUNNING to DRAINING: the producer stops pushing and
// closes the queue, the consumer writes out everything still buffered,
// closes the log and the pipeline reaches STOPPED. Nothing is ever killed
// mid-write, and no acknowledged sample is lost.
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/danpilch/sampled/pkg/queue"
	"github.com/danpilch/sampled/pkg/sampler"
)

// State identifies where the pipeline is in its lifecycle.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Capturer produces one utilization sample per call, blocking for the
// measurement interval.
type Capturer interface {
	Capture(ctx context.Context) (sampler.Sample, error)
}

// Appender persists samples durably.
type Appender interface {
	Append(sampler.Sample) error
	Close() error
}

// Pipeline runs the producer and consumer tasks over one shared queue.
type Pipeline struct {
	capturer Capturer
	queue    *queue.Queue
	log      Appender
	logger   *logrus.Logger
	runID    string

	// wait between capture attempts after a counter read failure, so a
	// persistently broken source does not spin.
	retryWait time.Duration

	state atomic.Int32
}

// New creates a pipeline. A nil logger falls back to a warn-level default.
func New(c Capturer, q *queue.Queue, log Appender, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Pipeline{
		capturer:  c,
		queue:     q,
		log:       log,
		logger:    logger,
		runID:     uuid.NewString(),
		retryWait: time.Second,
	}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Run executes both tasks until ctx is cancelled or a storage error
// terminates the run. The sample log is closed before Run returns in
// either case, and every sample pushed before shutdown is persisted.
func (p *Pipeline) Run(ctx context.Context) error {
	p.state.Store(int32(StateRunning))
	p.logger.WithField("run_id", p.runID).Info("collection pipeline started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.produce(gctx) })
	g.Go(func() error { return p.consume() })

	err := g.Wait()
	p.state.Store(int32(StateStopped))
	p.logger.WithField("run_id", p.runID).Info("collection pipeline stopped")
	return err
}

// produce captures samples until shutdown, then closes the queue so the
// consumer can drain.
func (p *Pipeline) produce(ctx context.Context) error {
	defer p.queue.Close()

	for {
		if ctx.Err() != nil {
			p.state.Store(int32(StateDraining))
			p.logger.WithFields(logrus.Fields{
				"run_id":   p.runID,
				"buffered": p.queue.Len(),
			}).Info("shutdown requested, draining queue")
			return nil
		}

		s, err := p.capturer.Capture(ctx)
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			// Shutdown arrived mid-measurement; the partial reading was
			// discarded and the loop top handles the transition.
			continue
		case errors.Is(err, sampler.ErrStaleCounters):
			p.logger.WithField("run_id", p.runID).Warn("cpu counters did not advance, recording zero utilization")
		case err != nil:
			p.logger.WithFields(logrus.Fields{
				"run_id": p.runID,
				"error":  err,
			}).Warn("sample capture failed, skipping tick")
			p.pause(ctx)
			continue
		}

		if err := p.queue.Push(s); err != nil {
			// Only the consumer closes the queue from outside this task,
			// and it does so when persistence has already failed; that
			// error is the one worth surfacing.
			return nil
		}
	}
}

// consume pops until the queue reports no more data, persisting each
// sample. The log is closed exactly once on every path out.
func (p *Pipeline) consume() error {
	for {
		s, ok := p.queue.Pop()
		if !ok {
			return p.log.Close()
		}

		if err := p.log.Append(s); err != nil {
			p.logger.WithFields(logrus.Fields{
				"run_id": p.runID,
				"error":  err,
			}).Error("sample write failed, terminating pipeline")
			p.queue.Close()
			if cerr := p.log.Close(); cerr != nil {
				p.logger.WithFields(logrus.Fields{
					"run_id": p.runID,
					"error":  cerr,
				}).Error("sample log close failed")
			}
			return err
		}

		p.logger.WithFields(logrus.Fields{
			"run_id":      p.runID,
			"utilization": s.Utilization,
		}).Debug("sample persisted")
	}
}

func (p *Pipeline) pause(ctx context.Context) {
	timer := time.NewTimer(p.retryWait)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
