package sched

import (
	"bytes"
	"encoding/binary"
)

// Scalar covers the fixed-size primitive types accepted as single
// task arguments.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// AddArg appends one fixed-size value, little-endian, to the most
// recently scheduled task. The receiving service decides how the raw
// bytes are interpreted; there is no separator between arguments.
func AddArg[T Scalar](s *Scheduler, v T) error {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, v)
	return s.AddArgBytes(buf.Bytes())
}
