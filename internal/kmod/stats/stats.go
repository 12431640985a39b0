// Package stats is a reporter module: it dumps per-task performance
// counters and the event log through the debug sink.
package stats

import (
	"go.uber.org/zap"

	"tickos/internal/evlog"
	"tickos/internal/sched"
)

// Services offered by this module.
const (
	SvcTaskStats uint8 = 0 // args: none
	SvcEventLog  uint8 = 1 // args: none
)

// Module reads scheduler and event log state; it never mutates either.
type Module struct {
	uid   uint8
	rec   sched.CallbackRecord
	log   *zap.SugaredLogger
	sched *sched.Scheduler
	ev    *evlog.Log
}

func New(uid uint8, logger *zap.Logger, s *sched.Scheduler, ev *evlog.Log) *Module {
	m := &Module{
		uid:   uid,
		log:   logger.Sugar(),
		sched: s,
		ev:    ev,
	}
	m.rec.Fn = m.callback
	return m
}

// Register installs the module's services with the scheduler.
func (m *Module) Register() error {
	return m.sched.RegisterModule(m.uid, &m.rec)
}

func (m *Module) callback(rec *sched.CallbackRecord) {
	switch rec.ServiceID {
	case SvcTaskStats:
		m.reportTasks()
	case SvcEventLog:
		m.reportEvents()
	default:
		rec.RetVal = -1
	}
}

func (m *Module) reportTasks() {
	now := m.sched.Now()
	for _, te := range m.sched.Tasks() {
		avgRun := 0.0
		if te.Perf.Runs > 0 {
			avgRun = te.Perf.AccRuntime.Seconds() * 1000 / float64(te.Perf.Runs)
		}
		avgMiss := 0.0
		if te.Perf.StartMissCount > 0 {
			avgMiss = float64(te.Perf.StartMissTotalMS) / float64(te.Perf.StartMissCount)
		}

		m.log.Infow("task statistics",
			"now_ms", now,
			"module", te.ModuleUID,
			"service", te.ServiceID,
			"pid", te.PID,
			"period_ms", te.Period,
			"next_run_ms", te.Timestamp,
			"runs", te.Perf.Runs,
			"avg_runtime_ms", avgRun,
			"missed_starts", te.Perf.StartMissCount,
			"avg_miss_ms", avgMiss,
		)
	}
}

func (m *Module) reportEvents() {
	m.log.Infow("event log dump", "now_ms", m.sched.Now(), "entries", m.ev.Len(), "dropped", m.ev.Dropped())
	for _, e := range m.ev.Entries() {
		m.log.Infow("event",
			"at_ms", e.Timestamp,
			"module", e.ModuleUID,
			"service", e.ServiceID,
			"kind", e.Kind.String(),
		)
	}
}
