// Package testmod is a demo kernel module exposing three printing
// services, used to exercise the scheduler end to end.
package testmod

import (
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"tickos/internal/evlog"
	"tickos/internal/sched"
)

// Services offered by this module.
const (
	SvcPrintInt    uint8 = 0 // args: int16 value | uint8 line count
	SvcPrintString uint8 = 1 // args: NUL-terminated string, max 20 bytes
	SvcPrintFloat  uint8 = 2 // args: float32
)

// Service return statuses.
const (
	StatusOK     int32 = 0
	StatusArgErr int32 = -1
)

const maxStringLen = 20

// sid used for lifecycle events not tied to a service
const svcNone uint8 = 0xFF

// Module holds the callback record the scheduler dispatches into and
// the sinks the services print and report through.
type Module struct {
	uid uint8
	rec sched.CallbackRecord
	log *zap.SugaredLogger
	ev  *evlog.Log
}

// New creates the module; it is inert until registered.
func New(uid uint8, logger *zap.Logger, ev *evlog.Log) *Module {
	m := &Module{
		uid: uid,
		log: logger.Sugar(),
		ev:  ev,
	}
	m.rec.Fn = m.callback
	m.emit(svcNone, evlog.EventStartup)
	return m
}

// Register installs the module's services with the scheduler.
func (m *Module) Register(s *sched.Scheduler) error {
	if err := s.RegisterModule(m.uid, &m.rec); err != nil {
		return err
	}
	m.emit(svcNone, evlog.EventInitialized)
	return nil
}

// UID returns the module's registered UID.
func (m *Module) UID() uint8 {
	return m.uid
}

// callback decodes the raw argument bytes for the requested service.
// The byte layout is known only to the service branches; there is no
// separator between arguments.
func (m *Module) callback(rec *sched.CallbackRecord) {
	switch rec.ServiceID {
	case SvcPrintInt:
		if len(rec.Args) < 3 {
			rec.RetVal = StatusArgErr
			break
		}
		v := int16(binary.LittleEndian.Uint16(rec.Args))
		n := rec.Args[2]
		rec.RetVal = m.printInt16(v, n)
	case SvcPrintString:
		rec.RetVal = m.printString(rec.Args)
	case SvcPrintFloat:
		if len(rec.Args) < 4 {
			rec.RetVal = StatusArgErr
			break
		}
		f := math.Float32frombits(binary.LittleEndian.Uint32(rec.Args))
		rec.RetVal = m.printFloat(f)
	default:
		rec.RetVal = StatusArgErr
	}
}

func (m *Module) printInt16(v int16, n uint8) int32 {
	for i := uint8(0); i < n; i++ {
		m.log.Infof("service 0 printing int16: %d", v)
	}
	return StatusOK
}

// printString prints a NUL-terminated string of at most maxStringLen
// bytes. Longer (or unterminated) payloads report an argument error.
func (m *Module) printString(raw []byte) int32 {
	limit := maxStringLen
	if len(raw) < limit {
		limit = len(raw)
	}

	i := 0
	for i < limit && raw[i] != 0 {
		i++
	}
	if i == limit {
		m.log.Info("service 1 printing a string but there was an error with your string")
		return StatusArgErr
	}

	m.log.Infof("service 1 printing a string: %s", raw[:i])
	return StatusOK
}

func (m *Module) printFloat(f float32) int32 {
	m.log.Infof("service 2 printing float: %.2f", f)
	return StatusOK
}

func (m *Module) emit(sid uint8, kind evlog.EventKind) {
	if m.ev != nil {
		m.ev.Emit(m.uid, sid, kind)
	}
}
