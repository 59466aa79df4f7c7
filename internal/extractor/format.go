package extractor

import (
	"strconv"

	"ytbatch/internal/model"
)

// formatSelector maps a FormatSpec to the yt-dlp -f expression.
func formatSelector(spec model.FormatSpec) string {
	switch spec {
	case model.FormatVideo1080p:
		return "bestvideo[height<=1080]+bestaudio/best"
	case model.FormatVideo720p:
		return "bestvideo[height<=720]+bestaudio/best"
	case model.FormatAudioMP3, model.FormatAudioM4A, model.FormatAudioOpus:
		return "bestaudio/best"
	case model.FormatVideoBest:
		fallthrough
	default:
		return "bestvideo+bestaudio/best"
	}
}

// downloadArgs builds the yt-dlp invocation for a single URL. Output lands
// in workdir under an id-based template so the result can be glob-resolved.
func downloadArgs(url string, spec model.FormatSpec, outTemplate, ffmpegPath string) []string {
	args := []string{
		"-f", formatSelector(spec),
		"-o", outTemplate,
		"--no-playlist",
	}
	if !spec.Audio() {
		// Merging separate video+audio streams needs ffmpeg; yt-dlp drives it.
		args = append(args, "--merge-output-format", "mp4")
	}
	if ffmpegPath != "" {
		args = append(args, "--ffmpeg-location", ffmpegPath)
	}
	return append(args, url)
}

// metadataArgs builds the yt-dlp invocation for a metadata-only probe.
func metadataArgs(url string, spec model.FormatSpec) []string {
	return []string{
		"--dump-json",
		"-f", formatSelector(spec),
		"--no-playlist",
		url,
	}
}

// listingArgs builds the yt-dlp invocation for one page of a channel
// listing. Offsets are 0-based; yt-dlp's playlist bounds are 1-based and
// inclusive.
func listingArgs(url string, offset, count int) []string {
	return []string{
		"-J",
		"--flat-playlist",
		"--skip-download",
		"--playlist-start", strconv.Itoa(offset + 1),
		"--playlist-end", strconv.Itoa(offset + count),
		url,
	}
}
