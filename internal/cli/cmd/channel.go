package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "channel <url>",
		Short:         "List a channel's uploads page by page",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := currentSettings()
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			adapter, err := buildAdapter(s, false)
			if err != nil {
				return err
			}
			if size, _ := cmd.Flags().GetInt("page-size"); size > 0 {
				adapter.PageSize = size
			}

			token, _ := cmd.Flags().GetString("page")
			all, _ := cmd.Flags().GetBool("all")

			for {
				page, err := adapter.ListChannelPage(cmd.Context(), args[0], token)
				if err != nil {
					return &ExitError{Code: ExitDownloadError, Err: err}
				}
				for _, e := range page.Entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.URL, e.Title)
				}
				if !all || page.NextPage == "" {
					if page.NextPage != "" {
						fmt.Fprintf(cmd.ErrOrStderr(), "more available: --page %s\n", page.NextPage)
					}
					return nil
				}
				token = page.NextPage
			}
		},
	}
	cmd.Flags().String("page", "", "Page token from a previous invocation")
	cmd.Flags().Bool("all", false, "Page through the entire listing")
	cmd.Flags().Int("page-size", 0, "Entries per page (default 10)")
	return cmd
}
