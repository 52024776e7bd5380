package media

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"AirFM/model"
)

// StreamPrefix is the URL path prefix a track's relative filename is
// appended to when deriving its stream URL.
const StreamPrefix = "/stream/"

// ErrNotFound marks a file that is missing, is not a regular file, or
// resolves outside the library root. Traversal attempts and genuine
// misses are deliberately indistinguishable so that responses never leak
// what exists on the host filesystem.
var ErrNotFound = errors.New("track not found")

// Library is a read-only view over a root directory of audio files. The
// root is fixed at construction and is the trust boundary for every path
// the library resolves. A Library is safe for concurrent use; each open
// stream holds its own file handle.
type Library struct {
	root      string // Absolute, symlink-resolved
	chunkSize int64
}

// NewLibrary creates the root directory if absent and canonicalizes it.
// chunkSize <= 0 selects DefaultChunkSize.
func NewLibrary(root string, chunkSize int64) (*Library, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Library{root: resolved, chunkSize: chunkSize}, nil
}

// Root returns the canonicalized library root.
func (l *Library) Root() string {
	return l.root
}

// Resolve maps a client-supplied relative filename to an absolute path
// confined to the library root. Escaping the root yields ErrNotFound.
func (l *Library) Resolve(name string) (string, error) {
	candidate := filepath.Join(l.root, filepath.FromSlash(name))
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// The file may simply not exist yet; the joined path is already
		// lexically cleaned, so the containment check below still holds.
		resolved = candidate
	}
	if !l.contains(resolved) {
		return "", ErrNotFound
	}
	return resolved, nil
}

func (l *Library) contains(path string) bool {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Stat resolves name and stats it, requiring a regular file. It returns
// the resolved path alongside the file info.
func (l *Library) Stat(name string) (string, os.FileInfo, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil, ErrNotFound
	}
	return path, info, nil
}

// OpenRange opens name for reading over the inclusive interval br. The
// returned reader owns a file handle and must be closed by the caller
// whether the stream is fully consumed, abandoned early, or fails.
func (l *Library) OpenRange(name string, br ByteRange) (io.ReadCloser, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return newRangeReader(path, br, l.chunkSize)
}

// List walks the library and returns every audio track, sorted
// case-insensitively by filename. Files that vanish mid-walk are skipped.
// The root is re-created if something removed it since startup.
func (l *Library) List() ([]model.Track, error) {
	if err := os.MkdirAll(l.root, 0755); err != nil {
		return nil, err
	}
	tracks := []model.Track{}
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		guessed, ok := guessAudioType(path)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		tracks = append(tracks, model.Track{
			Filename: name,
			Size:     info.Size(),
			Mime:     guessed,
			URL:      StreamPrefix + name,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tracks, func(i, j int) bool {
		return strings.ToLower(tracks[i].Filename) < strings.ToLower(tracks[j].Filename)
	})
	return tracks, nil
}

// guessAudioType reports the MIME type for an audio filename. A file
// counts as audio when its guessed type has the audio/ prefix, or, when
// guessing is inconclusive, its extension is .mp3.
func guessAudioType(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	guessed := mime.TypeByExtension(ext)
	switch {
	case strings.HasPrefix(guessed, "audio/"):
		return guessed, true
	case ext == ".mp3":
		// Some systems carry no MIME table entry for mp3.
		return "audio/mpeg", true
	default:
		return "", false
	}
}

// ContentType guesses the MIME type served for a file, defaulting to
// audio/mpeg when nothing better is known.
func ContentType(name string) string {
	if guessed, ok := guessAudioType(name); ok {
		return guessed
	}
	if guessed := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); guessed != "" {
		return guessed
	}
	return "audio/mpeg"
}
