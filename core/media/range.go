package media

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsatisfiableRange marks a Range header that is malformed or cannot
// be satisfied against the file's size.
var ErrUnsatisfiableRange = errors.New("unsatisfiable range")

// ByteRange is an inclusive byte interval within a file of known size.
// Invariants: 0 <= Start <= End < Size.
type ByteRange struct {
	Start int64
	End   int64
	Size  int64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the Content-Range header value for a 206 response.
func (r ByteRange) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Size)
}

// WildcardContentRange formats the Content-Range header value for a 416
// response, where no satisfiable interval exists.
func WildcardContentRange(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}

// WholeFile returns the full-file range [0, size-1].
func WholeFile(size int64) ByteRange {
	return ByteRange{Start: 0, End: size - 1, Size: size}
}

// ParseRange parses a Range header value like "bytes=0-499" against the
// total file size. Exactly three single-range forms are accepted:
//
//	start-end   the interval [start, end]
//	start-      from start to the last byte
//	-suffix     the last suffix bytes
//
// Multi-range specs, unknown units and intervals outside [0, size-1] all
// return ErrUnsatisfiableRange. A size of zero invalidates every range.
func ParseRange(header string, size int64) (ByteRange, error) {
	spec, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: unit must be bytes: %q", ErrUnsatisfiableRange, header)
	}
	if strings.Contains(spec, ",") {
		return ByteRange{}, fmt.Errorf("%w: multi-range not supported: %q", ErrUnsatisfiableRange, header)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: %q", ErrUnsatisfiableRange, header)
	}

	var start, end int64
	if startStr == "" {
		// Suffix form: the last N bytes of the file.
		suffix, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return ByteRange{}, fmt.Errorf("%w: %q", ErrUnsatisfiableRange, header)
		}
		start = size - suffix
		if start < 0 {
			start = 0
		}
		end = size - 1
	} else {
		var err error
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return ByteRange{}, fmt.Errorf("%w: %q", ErrUnsatisfiableRange, header)
		}
		if endStr == "" {
			end = size - 1
		} else if end, err = strconv.ParseInt(endStr, 10, 64); err != nil {
			return ByteRange{}, fmt.Errorf("%w: %q", ErrUnsatisfiableRange, header)
		}
	}

	// ParseInt never yields a negative start here (a leading "-" is
	// consumed by the suffix form), so bounds checking is all that's left.
	if end < start || end >= size {
		return ByteRange{}, fmt.Errorf("%w: %d-%d/%d", ErrUnsatisfiableRange, start, end, size)
	}
	return ByteRange{Start: start, End: end, Size: size}, nil
}
