package source

import (
	"fmt"
	"os"
	"sync"

	"github.com/utkarsh5026/rexec/executor"
)

// FileResource is one open handle on a file, owned by exactly one
// executor worker. The handle is opened at Acquire and closed at
// Release; Release is idempotent. Reads use ReadAt, so the handle keeps
// no seek state, but the one-worker-per-resource pairing still means no
// two goroutines ever touch the same handle.
type FileResource struct {
	path string
	file *os.File
	size int64

	mu     sync.Mutex
	closed bool
}

// NewFileResource creates an unopened handle on path.
func NewFileResource(path string) *FileResource {
	return &FileResource{path: path}
}

// Path returns the file path the resource reads from.
func (f *FileResource) Path() string {
	return f.path
}

// Size returns the file size observed at Acquire.
func (f *FileResource) Size() int64 {
	return f.size
}

// Acquire opens the file handle.
func (f *FileResource) Acquire() error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}

	f.mu.Lock()
	f.file = file
	f.size = info.Size()
	f.closed = false
	f.mu.Unlock()
	return nil
}

// Release closes the handle. Idempotent; runs on every exit path of the
// owning executor regardless of the error context it receives.
func (f *FileResource) Release(error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.file == nil {
		return nil
	}
	f.closed = true
	return f.file.Close()
}

// ReadRange reads one byte range from the handle.
func (f *FileResource) ReadRange(r Range) ([]byte, error) {
	if f.file == nil {
		return nil, fmt.Errorf("%s: %w", f.path, ErrSourceClosed)
	}
	if err := r.validate(f.size); err != nil {
		return nil, err
	}

	buf := make([]byte, r.Len())
	if _, err := f.file.ReadAt(buf, r.Start); err != nil {
		return nil, err
	}
	return buf, nil
}

// readRange is the TaskFunc submitted for every requested chunk.
func readRange(resource *FileResource, r Range) ([]byte, error) {
	return resource.ReadRange(r)
}

// FileSource serves byte ranges from a regular file through independent
// handles. With numWorkers > 0 it opens that many handles and reads
// chunks in parallel on a ResourcePool; with numWorkers == 0 it opens a
// single handle and reads inline on a ResourceExecutor. Either way the
// caller sees the same Chunks surface.
type FileSource struct {
	path string
	exec executor.Executor[*FileResource, Range, []byte]
	size int64

	mu     sync.Mutex
	closed bool
}

// NewFileSource opens a source on path. numWorkers is the number of
// background readers; 0 means inline reads on the caller's goroutine.
// The handles are acquired before NewFileSource returns.
func NewFileSource(path string, numWorkers int, opts ...executor.Option) (*FileSource, error) {
	var exec executor.Executor[*FileResource, Range, []byte]
	if numWorkers <= 0 {
		exec = executor.NewResourceExecutor[*FileResource, Range, []byte](NewFileResource(path))
	} else {
		resources := make([]*FileResource, 0, numWorkers)
		for range numWorkers {
			resources = append(resources, NewFileResource(path))
		}
		exec = executor.NewResourcePool[*FileResource, Range, []byte](resources, opts...)
	}

	if err := exec.Acquire(); err != nil {
		_ = exec.Shutdown(true)
		return nil, err
	}

	s := &FileSource{path: path, exec: exec}
	if info, err := os.Stat(path); err == nil {
		s.size = info.Size()
	}
	return s, nil
}

// Path returns the file path the source reads from.
func (s *FileSource) Path() string {
	return s.path
}

// Size returns the file size observed when the source was opened.
func (s *FileSource) Size() int64 {
	return s.size
}

// NumWorkers reports the number of background readers (0 = inline).
func (s *FileSource) NumWorkers() int {
	return s.exec.NumWorkers()
}

// Chunks submits one read per requested range and returns chunks whose
// futures fill as the reads complete. With inline execution the chunks
// are already filled on return, and a failing read surfaces its error
// from Chunks itself.
func (s *FileSource) Chunks(ranges []Range) ([]Chunk, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSourceClosed
	}

	chunks := make([]Chunk, 0, len(ranges))
	for _, r := range ranges {
		future, err := s.exec.Submit(readRange, r)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{Range: r, future: future})
	}
	return chunks, nil
}

// Close shuts down any workers and closes every handle. Idempotent.
func (s *FileSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.exec.Release(nil)
}
