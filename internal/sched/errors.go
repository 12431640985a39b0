package sched

import "errors"

var (
	// ErrInvalidModule marks a UID outside the registry range or with
	// no callback installed.
	ErrInvalidModule = errors.New("invalid module UID")
	// ErrNoSuchTask is returned by removals that matched nothing.
	ErrNoSuchTask = errors.New("no such task")
	// ErrArgOverflow is returned when an argument append would exceed
	// the per-task cap.
	ErrArgOverflow = errors.New("argument buffer overflow")
)
