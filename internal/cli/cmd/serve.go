package cmd

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"ytbatch/internal/queue"
	"ytbatch/internal/server"
	"ytbatch/internal/util"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the web UI and JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := currentSettings()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}

			adapter, err := buildAdapter(s, true)
			if err != nil {
				return err
			}
			if err := util.EnsureDir(s.OutDir); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}

			listen, _ := cmd.Flags().GetString("listen")
			origins, _ := cmd.Flags().GetString("allowed-origins")

			logger := log.New(os.Stderr, "", log.LstdFlags)
			logger.Printf("saving downloads to %s", s.OutDir)

			manager := queue.NewManager(adapter, s.OutDir)
			srv := server.New(adapter, manager, logger, origins)
			if err := srv.ListenAndServe(cmd.Context(), listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().String("listen", "127.0.0.1:8080", "Listen address")
	cmd.Flags().String("allowed-origins", "*", "Comma-separated CORS origin allow-list")
	return cmd
}
