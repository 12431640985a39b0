package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(uid, sid uint8, ts int64) *TaskEntry {
	return newTaskEntry(uid, sid, ts, 0, 0)
}

func TestQueueOrdersByTimestampThenInsertion(t *testing.T) {
	q := newTaskQueue()

	a := entryAt(1, 0, 500)
	b := entryAt(1, 1, 300)
	c := entryAt(1, 2, 500)
	d := entryAt(1, 3, 100)
	for _, te := range []*TaskEntry{a, b, c, d} {
		q.insert(te, true)
	}

	require.Equal(t, 4, q.size())
	assert.Same(t, d, q.popHead())
	assert.Same(t, b, q.popHead())
	assert.Same(t, a, q.popHead(), "FIFO among equal timestamps")
	assert.Same(t, c, q.popHead())
	assert.Nil(t, q.popHead())
}

func TestQueuePopClearsAnchor(t *testing.T) {
	q := newTaskQueue()

	te := entryAt(1, 0, 100)
	q.insert(te, true)
	require.Same(t, te, q.lastIns)

	q.popHead()
	assert.Nil(t, q.lastIns)
}

func TestQueueReinsertKeepsAnchorUntouched(t *testing.T) {
	q := newTaskQueue()

	anchored := entryAt(1, 0, 200)
	q.insert(anchored, true)

	periodic := entryAt(2, 0, 100)
	q.insert(periodic, false)

	assert.Same(t, anchored, q.lastIns)
}

func TestQueueRemoveByPID(t *testing.T) {
	q := newTaskQueue()

	a := entryAt(1, 0, 100)
	a.PID = 11
	b := entryAt(1, 0, 200)
	b.PID = 12
	q.insert(a, true)
	q.insert(b, true)

	assert.False(t, q.removeByPID(99))
	assert.True(t, q.removeByPID(11))
	assert.Equal(t, 1, q.size())
	assert.Same(t, b, q.peek())
}

func TestQueueRemoveAnchoredEntryClearsAnchor(t *testing.T) {
	q := newTaskQueue()

	te := entryAt(1, 0, 100)
	te.PID = 7
	q.insert(te, true)

	require.True(t, q.removeByPID(7))
	assert.Nil(t, q.lastIns)
}

func TestQueueRemoveMatching(t *testing.T) {
	q := newTaskQueue()

	a := entryAt(1, 0, 100)
	a.Args = []byte{1, 2}
	b := entryAt(1, 0, 200)
	b.Args = []byte{3, 4}
	q.insert(a, true)
	q.insert(b, true)

	assert.False(t, q.removeMatching(2, 0, nil))
	assert.False(t, q.removeMatching(1, 0, []byte{5}))

	assert.True(t, q.removeMatching(1, 0, []byte{3, 4}))
	assert.Equal(t, 1, q.size())

	// nil args: first (uid, sid) match goes
	assert.True(t, q.removeMatching(1, 0, nil))
	assert.Zero(t, q.size())
}

func TestQueueSnapshotIsDetached(t *testing.T) {
	q := newTaskQueue()

	te := entryAt(1, 0, 100)
	te.Args = []byte{1, 2, 3}
	q.insert(te, true)

	snap := q.snapshot()
	require.Len(t, snap, 1)
	snap[0].Args[0] = 99
	snap[0].Timestamp = 0

	assert.Equal(t, byte(1), q.peek().Args[0])
	assert.Equal(t, int64(100), q.peek().Timestamp)
	assert.Equal(t, 1, q.size())
}

func TestQueueFindByPID(t *testing.T) {
	q := newTaskQueue()

	te := entryAt(1, 0, 100)
	te.PID = 42
	q.insert(te, true)

	assert.Same(t, te, q.findByPID(42))
	assert.Nil(t, q.findByPID(43))
}
