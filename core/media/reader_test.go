package media

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTrack(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRangeReaderExactInterval(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "t.mp3", "0123456789")

	cases := []struct {
		name string
		br   ByteRange
		want string
	}{
		{"middle", ByteRange{2, 5, 10}, "2345"},
		{"whole", WholeFile(10), "0123456789"},
		{"first byte", ByteRange{0, 0, 10}, "0"},
		{"last byte", ByteRange{9, 9, 10}, "9"},
		{"tail", ByteRange{7, 9, 10}, "789"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := newRangeReader(path, tc.br, 0)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("read %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRangeReaderChunkCap(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "t.mp3", "0123456789")

	r, err := newRangeReader(path, WholeFile(10), 4)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// A large buffer must still be filled at most chunkSize at a time.
	buf := make([]byte, 64)
	var sizes []int
	total := 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sizes = append(sizes, n)
			total += n
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total != 10 {
		t.Fatalf("read %d bytes, want 10", total)
	}
	for _, n := range sizes {
		if n > 4 {
			t.Fatalf("chunk of %d bytes exceeds cap 4 (chunks %v)", n, sizes)
		}
	}
}

func TestRangeReaderNeverPastEnd(t *testing.T) {
	// The file is longer than the interval; the reader must stop at End.
	path := writeTrack(t, t.TempDir(), "t.mp3", "0123456789ABCDEF")

	r, err := newRangeReader(path, ByteRange{4, 7, 16}, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "4567" {
		t.Fatalf("read %q, want %q", got, "4567")
	}
}

func TestRangeReaderTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTrack(t, dir, "t.mp3", "0123456789")

	r, err := newRangeReader(path, WholeFile(10), 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	first := make([]byte, 2)
	if _, err := io.ReadFull(r, first); err != nil {
		t.Fatal(err)
	}

	// Shrink the file under the reader; the stream ends early with a
	// clean EOF rather than an error or padding bytes.
	if err := os.Truncate(path, 4); err != nil {
		t.Fatal(err)
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll after truncate: %v", err)
	}
	if got := string(first) + string(rest); got != "0123" {
		t.Fatalf("read %q after truncation, want %q", got, "0123")
	}
}

func TestRangeReaderEmptyInterval(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "empty.mp3", "")

	r, err := newRangeReader(path, WholeFile(0), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("read %d bytes from empty interval", len(got))
	}
}

func TestRangeReaderCloseAfterPartialConsume(t *testing.T) {
	path := writeTrack(t, t.TempDir(), "t.mp3", "0123456789")

	r, err := newRangeReader(path, WholeFile(10), 2)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 2)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close after partial consume: %v", err)
	}
}

func TestRangeReaderMissingFile(t *testing.T) {
	_, err := newRangeReader(filepath.Join(t.TempDir(), "gone.mp3"), WholeFile(10), 0)
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("error = %v, want ErrUnreadable", err)
	}
}
