// Package encoder drives ffmpeg for audio container conversion. Video
// merging is handled by the downloader itself and never lands here.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ytbatch/internal/util"
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath string
	Verbose    bool
	Runner     util.CmdRunner // Injected in tests; defaults to real processes.
}

// ConvertAudio transcodes inputPath into outputPath with the given codec.
// An incomplete output file is removed on failure.
func ConvertAudio(ctx context.Context, inputPath, outputPath, codec string, opts Options) error {
	if opts.FFmpegPath == "" {
		return errors.New("ffmpeg path is required")
	}
	if inputPath == "" || outputPath == "" {
		return errors.New("input and output paths are required")
	}

	args, err := BuildAudioArgs(inputPath, outputPath, codec)
	if err != nil {
		return err
	}

	if err := util.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    args,
		Verbose: opts.Verbose,
	})
	if runErr != nil {
		_ = util.RemoveIfExists(outputPath)
		if detail := util.LastLine(res.Stderr); detail != "" {
			return fmt.Errorf("ffmpeg failed: %s: %w", detail, runErr)
		}
		return fmt.Errorf("ffmpeg failed: %w", runErr)
	}

	if fi, err := os.Stat(outputPath); err != nil || fi.Size() == 0 {
		_ = util.RemoveIfExists(outputPath)
		return errors.New("ffmpeg produced no output")
	}
	return nil
}
