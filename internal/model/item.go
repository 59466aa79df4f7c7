package model

import "fmt"

// Status is the lifecycle state of a queue item. It only moves forward:
// pending → downloading → done or error.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusDone        Status = "done"
	StatusError       Status = "error"
)

// Terminal reports whether the item has finished, successfully or not.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// FormatSpec names a download format understood by the extraction adapter.
type FormatSpec string

const (
	FormatVideoBest  FormatSpec = "video_best"
	FormatVideo1080p FormatSpec = "video_1080p"
	FormatVideo720p  FormatSpec = "video_720p"
	FormatAudioMP3   FormatSpec = "audio_mp3"
	FormatAudioM4A   FormatSpec = "audio_m4a"
	FormatAudioOpus  FormatSpec = "audio_opus"
)

// ParseFormatSpec validates a raw format string.
func ParseFormatSpec(raw string) (FormatSpec, error) {
	switch FormatSpec(raw) {
	case FormatVideoBest, FormatVideo1080p, FormatVideo720p,
		FormatAudioMP3, FormatAudioM4A, FormatAudioOpus:
		return FormatSpec(raw), nil
	}
	return "", fmt.Errorf("invalid format %q (valid: video_best|video_1080p|video_720p|audio_mp3|audio_m4a|audio_opus)", raw)
}

// Audio reports whether the format is audio-only.
func (f FormatSpec) Audio() bool {
	switch f {
	case FormatAudioMP3, FormatAudioM4A, FormatAudioOpus:
		return true
	}
	return false
}

// AudioCodec returns the target audio codec name, or "" for video formats.
func (f FormatSpec) AudioCodec() string {
	switch f {
	case FormatAudioMP3:
		return "mp3"
	case FormatAudioM4A:
		return "m4a"
	case FormatAudioOpus:
		return "opus"
	}
	return ""
}

// QueueItem is one URL in the batch queue with its requested format and
// current state. URL is the unique key.
type QueueItem struct {
	URL    string     `json:"url"`
	Format FormatSpec `json:"format"`
	Status Status     `json:"status"`
	Error  string     `json:"error,omitempty"`
	File   string     `json:"file,omitempty"`
}

// Downloaded describes the media file produced for a queue item.
type Downloaded struct {
	Path     string // Final path of the output file.
	Title    string
	Uploader string
	ID       string
}
