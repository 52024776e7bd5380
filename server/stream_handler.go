package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"AirFM/config"
	"AirFM/core/media"
	"AirFM/logger"

	"github.com/gorilla/mux"
)

// StreamHandler serves audio files with HTTP range support. Each request
// moves through resolve → stat → range inspection and ends in exactly one
// of 200 (whole file), 206 (partial), 404 or 416. HEAD requests produce
// the same status and headers as GET with no body.
type StreamHandler struct {
	lib *media.Library
	cfg *config.Config
}

// NewStreamHandler creates a StreamHandler instance.
func NewStreamHandler(lib *media.Library, cfg *config.Config) *StreamHandler {
	return &StreamHandler{lib: lib, cfg: cfg}
}

// ServeHTTP implements the http.Handler interface.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	path, info, err := h.lib.Stat(name)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	size := info.Size()
	contentType := media.ContentType(path)

	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" {
		h.serveWhole(w, r, name, size, contentType)
		return
	}

	br, err := media.ParseRange(rangeHeader, size)
	if err != nil {
		logger.Debug("rejecting range",
			logger.String("range", rangeHeader),
			logger.String("file", name),
			logger.ErrorField(err))
		h.writeUnsatisfiable(w, size)
		return
	}
	h.servePartial(w, r, name, br, contentType)
}

// serveWhole sends the entire file with a 200.
func (h *StreamHandler) serveWhole(w http.ResponseWriter, r *http.Request, name string, size int64, contentType string) {
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.copyRange(w, r, name, media.WholeFile(size), http.StatusOK)
}

// servePartial sends the requested interval with a 206.
func (h *StreamHandler) servePartial(w http.ResponseWriter, r *http.Request, name string, br media.ByteRange, contentType string) {
	w.Header().Set("Content-Range", br.ContentRange())
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(br.Length(), 10))
	w.Header().Set("Content-Type", contentType)

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusPartialContent)
		return
	}
	h.copyRange(w, r, name, br, http.StatusPartialContent)
}

// writeUnsatisfiable sends a bodyless 416 naming the file's true extent.
func (h *StreamHandler) writeUnsatisfiable(w http.ResponseWriter, size int64) {
	w.Header().Set("Content-Range", media.WildcardContentRange(size))
	w.Header().Set("Accept-Ranges", "bytes")
	w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
}

// copyRange opens the file over br and streams it to the client. Once
// headers are out, failures can only be logged: a dropped client aborts
// the copy via a write error, and a file truncated mid-read ends the
// stream short of the advertised Content-Length.
func (h *StreamHandler) copyRange(w http.ResponseWriter, r *http.Request, name string, br media.ByteRange, status int) {
	reader, err := h.lib.OpenRange(name, br)
	if err != nil {
		// The stat above succeeded, so the file existed moments ago;
		// losing it here is a race with an external writer.
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to open file for streaming",
			logger.String("file", name),
			logger.String("requestId", RequestID(r.Context())),
			logger.ErrorField(err))
		http.Error(w, "Failed to open file", http.StatusInternalServerError)
		return
	}
	defer reader.Close()

	w.WriteHeader(status)
	sent, err := io.Copy(w, reader)
	if err != nil {
		logger.Warn("stream aborted",
			logger.String("file", name),
			logger.String("requestId", RequestID(r.Context())),
			logger.Int64("bytesSent", sent),
			logger.ErrorField(err))
		return
	}
	if sent < br.Length() {
		logger.Warn("short stream, file shrank during read",
			logger.String("file", name),
			logger.Int64("bytesSent", sent),
			logger.Int64("expected", br.Length()))
	}
}
