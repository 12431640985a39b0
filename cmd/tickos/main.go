// Command tickos runs the demo embedding: a tick clock, the event
// log, two kernel modules and the canonical six-task schedule, driven
// until --run-for milliseconds have passed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tickos/internal/evlog"
	"tickos/internal/kmod/stats"
	"tickos/internal/kmod/testmod"
	"tickos/internal/sched"
)

// Well-known UIDs of the demo embedding. The core itself mandates
// nothing beyond its own reserved UID (config scheduler_uid).
const (
	testModUID uint8 = 3
	statsUID   uint8 = 4
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var runFor int64

	cmd := &cobra.Command{
		Use:           "tickos",
		Short:         "Minimal cooperative scheduling kernel demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, runFor)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "config.yml", "path to the YAML config")
	cmd.Flags().Int64Var(&runFor, "run-for", 30000, "how long to drive the dispatch loop, in ms")
	return cmd
}

func run(cfgPath string, runFor int64) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := sched.Load(cfgPath)
	logger.Sugar().Infow("loaded config", "config", cfg)

	clock := sched.NewTickClock(int64(cfg.TickMS), 256)
	ev := evlog.New(cfg.EventLogCap, clock.Now)
	ev.Start(cfg.EventLogOn)
	s := sched.New(cfg, clock, ev)

	tm := testmod.New(testModUID, logger, ev)
	if err := tm.Register(s); err != nil {
		return err
	}
	st := stats.New(statsUID, logger, s, ev)
	if err := st.Register(); err != nil {
		return err
	}

	if err := scheduleDemoTasks(s); err != nil {
		return err
	}
	logger.Info("added tasks in the queue, entering dispatch loop")

	clock.Start()
	defer clock.Stop()

	for clock.Now() < runFor {
		<-clock.Ch
		for s.RunOnce() {
		}
	}

	logger.Sugar().Infow("done", "now_ms", clock.Now(), "pending", s.NumTasks(), "events", ev.Len())
	return nil
}

// scheduleDemoTasks queues the demo workload:
//  1. print a float 1s after startup
//  2. print an int16 twice, every 5s from 2s, four runs total
//  3. print a 17-byte string 4s after startup
//  4. print a 34-byte string 9s after startup (too long on purpose)
//  5. print task statistics every 10s from 10s, two runs total
//  6. dump the event log 22s from now (relative time)
func scheduleDemoTasks(s *sched.Scheduler) error {
	if _, err := s.ScheduleOnce(testModUID, testmod.SvcPrintFloat, 1000); err != nil {
		return err
	}
	if err := sched.AddArg(s, float32(127.58)); err != nil {
		return err
	}

	if _, err := s.SchedulePeriodic(testModUID, testmod.SvcPrintInt, 2000, 5000, 4); err != nil {
		return err
	}
	if err := sched.AddArg(s, int16(-8574)); err != nil {
		return err
	}
	if err := sched.AddArg(s, uint8(2)); err != nil {
		return err
	}

	if _, err := s.ScheduleOnce(testModUID, testmod.SvcPrintString, 4000); err != nil {
		return err
	}
	if err := s.AddArgBytes(append([]byte("Printing at T+4s"), 0)); err != nil {
		return err
	}

	if _, err := s.ScheduleOnce(testModUID, testmod.SvcPrintString, 9000); err != nil {
		return err
	}
	if err := s.AddArgBytes(append([]byte("Printing a slightly longer string"), 0)); err != nil {
		return err
	}

	if _, err := s.SchedulePeriodic(statsUID, stats.SvcTaskStats, 10000, 10000, 2); err != nil {
		return err
	}

	if _, err := s.ScheduleOnce(statsUID, stats.SvcEventLog, -22000); err != nil {
		return err
	}

	return nil
}
