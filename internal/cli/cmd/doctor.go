package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytbatch/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp/youtube-dl, ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := currentSettings()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			dl, derr := deps.FindDownloader(s.DLBinary)
			if derr != nil {
				return &ExitError{Code: ExitMissingDep, Err: derr}
			}
			ff, ferr := deps.FindFFmpeg(s.FFmpegBinary)
			if ferr != nil {
				return &ExitError{Code: ExitMissingDep, Err: ferr}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloader: %s\n", dl)
			fmt.Fprintf(cmd.OutOrStdout(), "FFmpeg:     %s\n", ff)
			fmt.Fprintf(cmd.OutOrStdout(), "Downloads:  %s\n", s.OutDir)
			return nil
		},
	}
}
