package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tickos/internal/evlog"
	"tickos/internal/sched"
)

func newTestKernel() (*sched.Scheduler, *sched.TickClock, *evlog.Log) {
	clock := sched.NewTickClock(1, 0)
	ev := evlog.New(0, clock.Now)
	ev.Start(true)
	cfg := sched.Config{TickMS: 1, ModuleSlots: 10, SchedulerUID: 7, ArgCapBytes: 64}
	return sched.New(cfg, clock, ev), clock, ev
}

func TestReportServices(t *testing.T) {
	s, clock, ev := newTestKernel()

	m := New(4, zap.NewNop(), s, ev)
	require.NoError(t, m.Register())
	assert.True(t, s.ValidModule(4))

	// some state to report on
	_, err := s.SchedulePeriodic(4, SvcTaskStats, 100, 100, sched.RepeatForever)
	require.NoError(t, err)
	for clock.Now() < 300 {
		clock.Advance(1)
		for s.RunOnce() {
		}
	}
	require.NotZero(t, s.NumTasks())
	require.NotZero(t, ev.Len())

	rec := &sched.CallbackRecord{ServiceID: SvcTaskStats}
	m.callback(rec)
	assert.Zero(t, rec.RetVal)

	rec = &sched.CallbackRecord{ServiceID: SvcEventLog}
	m.callback(rec)
	assert.Zero(t, rec.RetVal)
}

func TestUnknownServiceReportsError(t *testing.T) {
	s, _, ev := newTestKernel()

	m := New(4, zap.NewNop(), s, ev)
	require.NoError(t, m.Register())

	rec := &sched.CallbackRecord{ServiceID: 99}
	m.callback(rec)
	assert.Equal(t, int32(-1), rec.RetVal)
}
