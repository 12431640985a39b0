// internal/sched/queue.go

package sched

import (
	"bytes"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// entryKey orders the queue: by timestamp, then by insertion sequence
// so equal timestamps stay FIFO.
type entryKey struct {
	ts  int64
	seq uint64
}

// entryCmp implements the comparator for red-black tree ordering.
func entryCmp(a, b any) int {
	ka, kb := a.(entryKey), b.(entryKey)
	switch {
	case ka.ts < kb.ts:
		return -1
	case ka.ts > kb.ts:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// taskQueue is the time-ordered multiset of pending tasks. It is not
// safe on its own; every call happens under the scheduler mutex, which
// stands in for the interrupt mask of the dispatch core.
//
// lastIns is a weak reference to the most recently inserted entry so
// arguments can still be appended after the scheduling call returned.
// It never survives a pop.
type taskQueue struct {
	rbt     *redblacktree.Tree
	lastIns *TaskEntry
	seq     uint64
}

func newTaskQueue() *taskQueue {
	return &taskQueue{rbt: redblacktree.NewWith(entryCmp)}
}

// insert places the entry in (timestamp, insertion) order. Inserts on
// behalf of a caller anchor the entry for argument appends; periodic
// reinserts from the dispatch loop do not.
func (q *taskQueue) insert(te *TaskEntry, anchor bool) {
	q.seq++
	te.key = entryKey{ts: te.Timestamp, seq: q.seq}
	q.rbt.Put(te.key, te)
	if anchor {
		q.lastIns = te
	}
}

// peek returns the earliest entry without removing it.
func (q *taskQueue) peek() *TaskEntry {
	node := q.rbt.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*TaskEntry)
}

// popHead removes and returns the earliest entry. Any pop invalidates
// the append anchor.
func (q *taskQueue) popHead() *TaskEntry {
	node := q.rbt.Left()
	if node == nil {
		return nil
	}
	te := node.Value.(*TaskEntry)
	q.rbt.Remove(node.Key)
	q.lastIns = nil
	return te
}

// removeByPID removes the first entry carrying the given PID.
func (q *taskQueue) removeByPID(pid uint16) bool {
	it := q.rbt.Iterator()
	for it.Next() {
		te := it.Value().(*TaskEntry)
		if te.PID == pid {
			q.unlink(te)
			return true
		}
	}
	return false
}

// removeMatching removes the first entry whose (uid, sid) match and,
// when args is non-nil, whose argument bytes match exactly.
func (q *taskQueue) removeMatching(uid, sid uint8, args []byte) bool {
	it := q.rbt.Iterator()
	for it.Next() {
		te := it.Value().(*TaskEntry)
		if te.ModuleUID != uid || te.ServiceID != sid {
			continue
		}
		if args != nil && !bytes.Equal(te.Args, args) {
			continue
		}
		q.unlink(te)
		return true
	}
	return false
}

func (q *taskQueue) unlink(te *TaskEntry) {
	q.rbt.Remove(te.key)
	if q.lastIns == te {
		q.lastIns = nil
	}
}

// findByPID returns the live entry with the given PID, if any.
func (q *taskQueue) findByPID(pid uint16) *TaskEntry {
	it := q.rbt.Iterator()
	for it.Next() {
		te := it.Value().(*TaskEntry)
		if te.PID == pid {
			return te
		}
	}
	return nil
}

// snapshot returns detached copies in scheduled order, so readers can
// walk the queue without holding the lock.
func (q *taskQueue) snapshot() []TaskEntry {
	out := make([]TaskEntry, 0, q.rbt.Size())
	it := q.rbt.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*TaskEntry).clone())
	}
	return out
}

func (q *taskQueue) size() int {
	return q.rbt.Size()
}
