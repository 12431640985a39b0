// internal/evlog/eventlog.go

package evlog

import (
	"sync"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

// EventKind classifies a logged event.
type EventKind uint8

const (
	EventUninitialized EventKind = iota
	EventStartup
	EventInitialized
	EventOK
	EventHang
	EventError
	EventPrioInversion
)

func (k EventKind) String() string {
	switch k {
	case EventUninitialized:
		return "UNINITIALIZED"
	case EventStartup:
		return "STARTUP"
	case EventInitialized:
		return "INITIALIZED"
	case EventOK:
		return "OK"
	case EventHang:
		return "HANG"
	case EventError:
		return "ERROR"
	case EventPrioInversion:
		return "PRIOINVERSION"
	default:
		return "UNKNOWN"
	}
}

// Entry is one event record: which module raised which kind during
// which service, and when.
type Entry struct {
	Timestamp int64
	ModuleUID uint8
	ServiceID uint8
	Kind      EventKind
}

// Log is the append-only event list shared by the scheduler and the
// kernel modules. Appends are cheap and safe from any goroutine,
// including tick handlers; a reader gets a snapshot in insertion
// order.
type Log struct {
	mu      sync.Mutex
	entries *singlylinkedlist.List
	cap     int
	on      bool
	dropped uint32
	now     func() int64
}

// New creates a log holding at most capacity entries (0 = unbounded).
// now supplies the timestamp for each append.
func New(capacity int, now func() int64) *Log {
	return &Log{
		entries: singlylinkedlist.New(),
		cap:     capacity,
		now:     now,
	}
}

// Start gates recording on or off. While off, Emit is a no-op.
func (l *Log) Start(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = enabled
}

// Emit appends (now, uid, sid, kind). When the log is full the record
// is dropped silently and counted.
func (l *Log) Emit(uid, sid uint8, kind EventKind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.on {
		return
	}
	if l.cap > 0 && l.entries.Size() >= l.cap {
		l.dropped++
		return
	}
	l.entries.Add(Entry{
		Timestamp: l.now(),
		ModuleUID: uid,
		ServiceID: sid,
		Kind:      kind,
	})
}

// Head returns the oldest entry, if any.
func (l *Log) Head() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.entries.Get(0)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Entries returns a snapshot from oldest to newest.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, l.entries.Size())
	it := l.entries.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Entry))
	}
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries.Size()
}

// Dropped returns how many records were lost to the capacity cap.
func (l *Log) Dropped() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
