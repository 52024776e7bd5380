package media

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize caps a single read when no chunk size is configured.
const DefaultChunkSize = 1 << 20

// ErrUnreadable marks a file that stats fine but cannot be opened for
// reading.
var ErrUnreadable = errors.New("file unreadable")

// rangeReader yields the bytes of a file over an inclusive interval, at
// most chunkSize bytes per read and never past End. If the file shrinks
// while being read the stream simply ends early; it must never hand out
// bytes beyond the requested interval.
type rangeReader struct {
	f         *os.File
	remaining int64
	chunkSize int64
}

// newRangeReader opens path and positions it at r.Start. The returned
// reader owns the file handle; the caller must Close it on every exit
// path.
func newRangeReader(path string, r ByteRange, chunkSize int64) (io.ReadCloser, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if _, err := f.Seek(r.Start, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &rangeReader{f: f, remaining: r.Length(), chunkSize: chunkSize}, nil
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	limit := r.chunkSize
	if limit > r.remaining {
		limit = r.remaining
	}
	if int64(len(p)) > limit {
		p = p[:limit]
	}
	n, err := r.f.Read(p)
	r.remaining -= int64(n)
	return n, err
}

func (r *rangeReader) Close() error {
	return r.f.Close()
}
