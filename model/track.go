package model

// Track is one streamable file in the media library. Tracks are
// materialized from the filesystem on each listing and have no identity
// beyond their path under the library root.
type Track struct {
	Filename string `json:"filename"` // Relative path, POSIX separators
	Size     int64  `json:"size"`     // Byte count at listing time
	Mime     string `json:"mime"`
	URL      string `json:"url"` // Stream endpoint for this track
}
