package sched

import "time"

// Pass to the repeats argument for an indefinite number of repeats.
const RepeatForever = -1

// Pass to the time argument for execution as soon as possible.
const ASAP = 0

// TaskPerf accumulates per-task performance counters, updated by the
// dispatch loop on every run.
type TaskPerf struct {
	Runs             uint32
	AccRuntime       time.Duration
	StartMissCount   uint32
	StartMissTotalMS int64
}

// TaskEntry is one scheduled invocation of (module, service, args) at
// an absolute millisecond timestamp. Periodic entries are reinserted
// by the dispatch loop with the same PID.
type TaskEntry struct {
	ModuleUID uint8
	ServiceID uint8
	PID       uint16
	Timestamp int64
	Period    int32 // 0 = one-shot
	Repeats   int32 // runs left before retiring (0 also allows one run); RepeatForever = indefinite
	Args      []byte
	Perf      TaskPerf

	key entryKey // position in the queue, set on insert
}

func newTaskEntry(uid, sid uint8, ts int64, period, repeats int32) *TaskEntry {
	return &TaskEntry{
		ModuleUID: uid,
		ServiceID: sid,
		Timestamp: ts,
		Period:    period,
		Repeats:   repeats,
	}
}

// clone returns a detached copy safe to hand outside the lock.
func (t *TaskEntry) clone() TaskEntry {
	c := *t
	c.Args = append([]byte(nil), t.Args...)
	return c
}
