package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
	"ytbatch/internal/ui"
	"ytbatch/internal/util"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [urls...]",
		Short:         "Download the given URLs with a bounded worker pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, args)
		},
	}
	bindRunFlags(cmd.Flags())
	return cmd
}

func bindRunFlags(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "Read URLs from a file (one per line)")
	fs.String("format", string(model.FormatVideoBest), "Download format: video_best, video_1080p, video_720p, audio_mp3, audio_m4a, audio_opus")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
	fs.Bool("keep-temp", false, "Keep per-item temp workdirs")
}

func collectURLs(cmd *cobra.Command, args []string) ([]string, error) {
	urls := append([]string(nil), args...)

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read url file: %w", err)
		}
		urls = append(urls, util.SplitURLList(string(data))...)
	}

	if len(urls) == 0 {
		return nil, errors.New("no URLs given; pass them as arguments or via --file")
	}
	for _, u := range urls {
		if err := util.ValidateVideoURL(u); err != nil {
			return nil, err
		}
	}
	return urls, nil
}

func runExecute(cmd *cobra.Command, args []string) error {
	urls, err := collectURLs(cmd, args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	formatStr, _ := cmd.Flags().GetString("format")
	spec, err := model.ParseFormatSpec(formatStr)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	s, err := currentSettings()
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	adapter, err := buildAdapter(s, true)
	if err != nil {
		return err
	}
	adapter.KeepTemp, _ = cmd.Flags().GetBool("keep-temp")

	if err := util.EnsureDir(s.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("create output dir: %w", err)}
	}

	manager := queue.NewManager(adapter, s.OutDir)
	manager.Enqueue(urls, spec)
	if _, err := manager.StartRun(cmd.Context(), s.Workers); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if !noUI && isTerminal() {
		if err := ui.Run(cmd.Context(), manager); err != nil {
			if errors.Is(err, context.Canceled) {
				return &ExitError{Code: ExitCLIError, Err: errors.New("aborted")}
			}
			return &ExitError{Code: ExitDownloadError, Err: err}
		}
		return nil
	}

	return runPlain(cmd, manager)
}

// runPlain waits for the pool and prints one line per item.
func runPlain(cmd *cobra.Command, manager *queue.Manager) error {
	if err := manager.Wait(cmd.Context()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	failed := 0
	for _, it := range manager.Snapshot() {
		switch it.Status {
		case model.StatusDone:
			fmt.Fprintf(cmd.OutOrStdout(), "done   %s -> %s\n", it.URL, it.File)
		case model.StatusError:
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "error  %s: %s\n", it.URL, it.Error)
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "%-6s %s\n", it.Status, it.URL)
		}
	}
	if failed > 0 {
		return &ExitError{Code: ExitDownloadError, Err: fmt.Errorf("%d item(s) failed", failed)}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
