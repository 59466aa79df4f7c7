package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ytbatch/internal/config"
	"ytbatch/internal/dirs"
	"ytbatch/internal/extractor"
	"ytbatch/internal/queue"
	"ytbatch/internal/util/deps"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytbatch [urls...]",
		Short:         "Batch downloader for YouTube videos and audio",
		Long:          "ytbatch downloads YouTube videos in batches. Browse a channel's uploads or paste URLs, queue them up, and a bounded worker pool fetches each one with yt-dlp, converting audio with ffmpeg when asked. Available as a CLI, a TUI, and a small web UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation behaves like `ytbatch run`.
			if len(args) == 0 {
				return cmd.Help()
			}
			return runExecute(cmd, args)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("out-dir", "o", "", "Output directory (default: the app data downloads dir)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("ffmpeg-binary", "", "Path to ffmpeg")
	root.PersistentFlags().IntP("workers", "w", queue.DefaultWorkers, "Parallel downloads (1-8)")

	bindRunFlags(root.Flags())

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newChannelCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	_ = config.Init(root)
	return root.ExecuteContext(ctx)
}

// settings are the resolved persistent options, with the precedence
// flag > env > config file handled by viper.
type settings struct {
	OutDir       string
	DLBinary     string
	FFmpegBinary string
	Verbose      bool
	Workers      int
}

func currentSettings() (settings, error) {
	s := settings{
		OutDir:       viper.GetString("out_dir"),
		DLBinary:     viper.GetString("dl_binary"),
		FFmpegBinary: viper.GetString("ffmpeg_binary"),
		Verbose:      viper.GetBool("verbose"),
		Workers:      viper.GetInt("workers"),
	}
	if s.OutDir == "" {
		dir, err := dirs.DefaultDownloadDir()
		if err != nil {
			return s, err
		}
		s.OutDir = dir
	}
	return s, nil
}

// buildAdapter locates the external tools and returns the yt-dlp adapter.
// Listing-only commands can tolerate a missing ffmpeg.
func buildAdapter(s settings, needFFmpeg bool) (*extractor.Adapter, error) {
	dlPath, err := deps.FindDownloader(s.DLBinary)
	if err != nil {
		return nil, &ExitError{Code: ExitMissingDep, Err: err}
	}
	ffmpegPath, err := deps.FindFFmpeg(s.FFmpegBinary)
	if err != nil {
		if needFFmpeg {
			return nil, &ExitError{Code: ExitMissingDep, Err: err}
		}
		ffmpegPath = ""
	}
	return &extractor.Adapter{
		DownloaderPath: dlPath,
		FFmpegPath:     ffmpegPath,
		Verbose:        s.Verbose,
	}, nil
}
