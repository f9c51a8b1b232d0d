package cli

import (
	"errors"
	"fmt"

	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"github.com/ogurasousui/dwrecords/internal/platform/config"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	var agencyID, pageToken, configPath string
	var pageSize int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "List probationary workers of an agency, most urgent conversions first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.OpenReviewer == nil {
				return errors.New("review is not available: no database configured")
			}

			ctx := cmd.Context()
			reviewer, closeFn, err := app.OpenReviewer(ctx, configPath)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := reviewer.ReviewProbation(ctx, worker.ReviewProbationInput{
				AgencyID:  agencyID,
				PageSize:  pageSize,
				PageToken: pageToken,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Entries) == 0 {
				fmt.Fprintln(out, "No probationary workers.")
				return nil
			}

			fmt.Fprintln(out, renderReviewTable(result.Entries))
			if result.NextPageToken != "" {
				fmt.Fprintf(out, "More results: --page-token %s\n", result.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agencyID, "agency", "", "Agency ID")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Number of workers per page (default 50, max 200)")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Page token from a previous run")
	cmd.Flags().StringVar(&configPath, "config", config.PathFromEnv(), "Path to the YAML config file")
	_ = cmd.MarkFlagRequired("agency")

	return cmd
}
