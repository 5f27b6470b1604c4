package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the polling cadence used when none is configured.
const DefaultInterval = 60 * time.Second

// Job is one scheduled unit of work. ctx is cancelled when the handle stops.
type Job func(ctx context.Context)

// Handle owns one running schedule. It is Active from Start until Stop.
type Handle struct {
	name     string
	interval time.Duration
	cron     *cron.Cron
	entry    cron.EntryID
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	log      *logrus.Entry
}

// Start runs job once immediately and then every interval until Stop is called.
// A tick that fires while the previous run is still in progress is skipped.
func Start(parent context.Context, name string, interval time.Duration, job Job) (*Handle, error) {
	if job == nil {
		return nil, fmt.Errorf("scheduler %s: nil job", name)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := logrus.WithFields(logrus.Fields{"component": "scheduler", "schedule": name})
	cronLog := cron.PrintfLogger(logger)

	ctx, cancel := context.WithCancel(parent)
	h := &Handle{
		name:     name,
		interval: interval,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		)),
		ctx:    ctx,
		cancel: cancel,
		log:    logger,
	}

	id, err := h.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() { job(h.ctx) })
	if err != nil {
		cancel()
		return nil, fmt.Errorf("register schedule %s: %w", name, err)
	}
	h.entry = id

	// The immediate run goes through the wrapped job so it shares the skip guard with later ticks.
	first := h.cron.Entry(id).WrappedJob
	h.cron.Start()
	go first.Run()
	go func() {
		<-ctx.Done()
		h.Stop()
	}()

	logger.Debugf("schedule started, every %s", interval)
	return h, nil
}

// Stop clears the timer and cancels the handle's context. It does not wait for a
// run in progress. Calling Stop more than once is a no-op.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		h.cron.Stop()
		h.cancel()
		h.log.Debug("schedule stopped")
	})
}

// Stopped reports whether Stop has been called.
func (h *Handle) Stopped() bool {
	return h.ctx.Err() != nil
}

// Interval returns the schedule period.
func (h *Handle) Interval() time.Duration {
	return h.interval
}
