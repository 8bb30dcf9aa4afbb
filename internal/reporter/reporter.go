// Package reporter runs a cron-scheduled background logger of a
// pager.Manager's resource accounting. It is deliberately outside the
// manager's lock: Stats() takes the lock itself for the snapshot, and the
// reporter only ever reads that snapshot on its own schedule.
package reporter

import (
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/pagevm/pagevm/internal/pager"
)

// Reporter periodically logs pager.Stats at a cron schedule.
type Reporter struct {
	mgr    *pager.Manager
	cron   *cron.Cron
	logger *log.Logger

	mu      sync.Mutex
	running bool
}

// New builds a Reporter for mgr that logs to logger (log.Default() if
// nil). The schedule later passed to Start is a cron expression with
// seconds (e.g. "*/30 * * * * *" for every 30 seconds).
func New(mgr *pager.Manager, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{
		mgr:    mgr,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// Start schedules the periodic report and begins running it. Returns an
// error if the cron expression is malformed.
func (r *Reporter) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, r.report)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for any in-flight report to finish.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	<-r.cron.Stop().Done()
}

func (r *Reporter) report() {
	s := r.mgr.Stats()
	r.logger.Printf(
		"pager stats: frames %d/%d blocks %d/%d procs %d evictions %d write_backs %d",
		s.FramesInUse, s.FramesTotal, s.BlocksInUse, s.BlocksTotal, s.Processes, s.Evictions, s.WriteBacks,
	)
}
