// Package scheduler runs periodic maintenance. The only job today is
// the scratch janitor, which reclaims downloads left behind by crashes
// that skipped deferred cleanup.
package scheduler

import (
	"fmt"
	"time"

	"tubewise/shared/logging"
	"tubewise/shared/scratch"

	"github.com/robfig/cron/v3"
)

type Janitor struct {
	cron    *cron.Cron
	scratch *scratch.Dir
	maxAge  time.Duration
}

func NewJanitor(scratchDir *scratch.Dir, schedule string, maxAge time.Duration) (*Janitor, error) {
	j := &Janitor{
		// Prevent overlapping sweeps
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		scratch: scratchDir,
		maxAge:  maxAge,
	}

	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
	logging.L().WithField("max_age", j.maxAge.String()).Info("scratch janitor started")
}

func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) sweep() {
	removed, err := j.scratch.Sweep(j.maxAge)
	if err != nil {
		logging.L().WithError(err).Warn("scratch sweep failed")
		return
	}
	if removed > 0 {
		logging.L().WithField("removed", removed).Info("scratch sweep reclaimed stale downloads")
	}
}
