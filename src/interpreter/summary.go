package interpreter

import (
	"fmt"
	"time"
)

// Summary contains run execution metadata
type Summary struct {
	// Instructions is the number of instructions executed, loop entries
	// included.
	Instructions int64
	// LoopIterations is the number of loop body passes.
	LoopIterations int64

	BytesRead    int64
	BytesWritten int64
	// EOFReached reports whether an input instruction hit end of stream.
	EOFReached bool

	TapeSize int
	// Pointer is the final pointer position.
	Pointer int
	// MaxPointer is the highest cell the pointer reached.
	MaxPointer int

	ExecutionTime time.Duration
}

// String renders the summary as a single key=value line.
func (s *Summary) String() string {
	return fmt.Sprintf("instructions=%d loops=%d read=%d written=%d pointer=%d max_pointer=%d time=%s",
		s.Instructions, s.LoopIterations, s.BytesRead, s.BytesWritten,
		s.Pointer, s.MaxPointer, s.ExecutionTime.Truncate(time.Microsecond))
}
