package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ytbatch/internal/util"
)

type fakeRunner struct {
	fail   bool
	stderr string
	size   int64
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	if f.fail {
		return util.CmdResult{Stderr: []byte(f.stderr), Code: 1}, errors.New("command failed (exit 1)")
	}
	out := spec.Args[len(spec.Args)-1]
	size := f.size
	if size <= 0 {
		size = 64
	}
	if err := os.WriteFile(out, make([]byte, size), 0o644); err != nil {
		return util.CmdResult{}, err
	}
	return util.CmdResult{}, nil
}

func TestConvertAudio(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "abc.webm")
	if err := os.WriteFile(in, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "abc.mp3")

	err := ConvertAudio(context.Background(), in, out, "mp3", Options{
		FFmpegPath: "/fake/ffmpeg",
		Runner:     &fakeRunner{},
	})
	if err != nil {
		t.Fatalf("ConvertAudio: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not created: %v", err)
	}
}

func TestConvertAudioFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "abc.m4a")
	// Simulate a partial file left behind by a crashed run.
	if err := os.WriteFile(out, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ConvertAudio(context.Background(), "in.webm", out, "m4a", Options{
		FFmpegPath: "/fake/ffmpeg",
		Runner:     &fakeRunner{fail: true, stderr: "Unknown encoder 'aac'\n"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("incomplete output should be removed")
	}
}

func TestConvertAudioRequiresFFmpeg(t *testing.T) {
	err := ConvertAudio(context.Background(), "in", "out", "mp3", Options{})
	if err == nil {
		t.Fatal("expected error for missing ffmpeg path")
	}
}
