// Package source provides byte-range readers for local files, built on
// top of the executor package. A source hands out Chunks: byte ranges
// whose contents arrive through futures, either already filled (memory
// maps need no threading) or resolved by a pool of file handles reading
// in parallel.
package source

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/rexec/executor"
)

var (
	// ErrSourceClosed is returned by Chunks after the source is closed.
	ErrSourceClosed = errors.New("source is closed")
)

// Range is a byte range within a file: Start inclusive, Stop exclusive.
type Range struct {
	Start int64
	Stop  int64
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int64 {
	return r.Stop - r.Start
}

func (r Range) validate(size int64) error {
	if r.Start < 0 || r.Stop < r.Start || r.Stop > size {
		return fmt.Errorf("invalid range [%d:%d) for size %d", r.Start, r.Stop, size)
	}
	return nil
}

// Chunk is one requested byte range plus the future that will carry its
// data. Chunks from a memory-mapped source are filled at creation;
// chunks from a pooled file source fill as workers get to them.
type Chunk struct {
	Range
	future executor.Future[[]byte]
}

// Bytes blocks until the chunk's data is available and returns it.
func (c Chunk) Bytes() ([]byte, error) {
	return c.future.Get()
}

// Ready reports whether the data is available without blocking.
func (c Chunk) Ready() bool {
	return c.future.Done()
}
