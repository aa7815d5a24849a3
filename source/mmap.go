package source

import (
	"sync"

	"golang.org/x/exp/mmap"

	"github.com/utkarsh5026/rexec/executor"
)

// MmapSource serves byte ranges from a memory-mapped file. A memory map
// is stateless, so no worker pool is involved: every chunk comes back
// already filled, backed by an ImmediateFuture.
//
// MmapSource implements executor.Resource, so it can also sit behind a
// ResourceExecutor when callers want the uniform submit surface.
type MmapSource struct {
	mu     sync.Mutex
	path   string
	reader *mmap.ReaderAt
	closed bool
}

// NewMmapSource memory-maps the file at path.
func NewMmapSource(path string) (*MmapSource, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &MmapSource{
		path:   path,
		reader: reader,
	}, nil
}

// Path returns the path of the mapped file.
func (s *MmapSource) Path() string {
	return s.path
}

// Size returns the length of the mapped file in bytes.
func (s *MmapSource) Size() int64 {
	return int64(s.reader.Len())
}

// Acquire is a no-op; the mapping was established by NewMmapSource.
func (s *MmapSource) Acquire() error {
	return nil
}

// Release unmaps the file. Idempotent; the error context of the exiting
// scope is ignored because unmapping happens on every exit path anyway.
func (s *MmapSource) Release(error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.reader.Close()
}

// Close unmaps the file. Equivalent to Release(nil).
func (s *MmapSource) Close() error {
	return s.Release(nil)
}

// Chunks reads every requested range and returns chunks that are
// already filled with data. Fails with ErrSourceClosed once the source
// has been released.
func (s *MmapSource) Chunks(ranges []Range) ([]Chunk, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSourceClosed
	}

	size := s.Size()
	chunks := make([]Chunk, 0, len(ranges))
	for _, r := range ranges {
		if err := r.validate(size); err != nil {
			return nil, err
		}

		buf := make([]byte, r.Len())
		if _, err := s.reader.ReadAt(buf, r.Start); err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{
			Range:  r,
			future: executor.NewImmediate(buf),
		})
	}
	return chunks, nil
}
