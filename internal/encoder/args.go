package encoder

import "fmt"

// BuildAudioArgs constructs ffmpeg arguments to convert a downloaded audio
// stream into the target codec's container. Returns an error for codecs the
// adapter does not hand out.
func BuildAudioArgs(inputPath, outputPath, codec string) ([]string, error) {
	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
	}
	switch codec {
	case "mp3":
		args = append(args, "-c:a", "libmp3lame", "-b:a", "192k")
	case "m4a":
		args = append(args, "-c:a", "aac", "-b:a", "192k", "-movflags", "+faststart")
	case "opus":
		args = append(args, "-c:a", "libopus", "-b:a", "192k")
	default:
		return nil, fmt.Errorf("unsupported audio codec %q", codec)
	}
	return append(args, outputPath), nil
}
