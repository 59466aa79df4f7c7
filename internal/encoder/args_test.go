package encoder

import (
	"strings"
	"testing"
)

func TestBuildAudioArgs(t *testing.T) {
	cases := []struct {
		codec string
		want  []string
	}{
		{"mp3", []string{"-c:a", "libmp3lame", "-b:a", "192k"}},
		{"m4a", []string{"-c:a", "aac", "-b:a", "192k", "-movflags", "+faststart"}},
		{"opus", []string{"-c:a", "libopus", "-b:a", "192k"}},
	}
	for _, tc := range cases {
		t.Run(tc.codec, func(t *testing.T) {
			args, err := BuildAudioArgs("in.webm", "out."+tc.codec, tc.codec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			joined := strings.Join(args, " ")
			if !strings.Contains(joined, strings.Join(tc.want, " ")) {
				t.Errorf("args %q missing %q", joined, strings.Join(tc.want, " "))
			}
			if args[len(args)-1] != "out."+tc.codec {
				t.Errorf("output path must be last arg, got %q", args[len(args)-1])
			}
			if !contains(args, "-vn") {
				t.Errorf("audio conversion must drop video streams")
			}
		})
	}
}

func TestBuildAudioArgsRejectsUnknownCodec(t *testing.T) {
	if _, err := BuildAudioArgs("in", "out", "flac"); err == nil {
		t.Fatal("expected error for unsupported codec")
	}
}

func contains(ss []string, q string) bool {
	for _, s := range ss {
		if s == q {
			return true
		}
	}
	return false
}
